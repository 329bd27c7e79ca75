// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

// stopWordList holds common words that disqualify a candidate even when it
// matches a name-shaped pattern. Lower-case; lookups fold case and strip
// trailing punctuation.
var stopWordList = []string{
	// articles, pronouns, conjunctions
	"the", "a", "an", "and", "or", "but", "nor", "for", "yet", "so",
	"i", "you", "he", "she", "it", "we", "they", "this", "that", "these",
	"those", "my", "your", "his", "her", "its", "our", "their", "who",
	"what", "which", "when", "where", "why", "how",

	// prepositions and auxiliaries
	"at", "by", "in", "of", "on", "to", "up", "as", "is", "are", "was",
	"were", "be", "been", "being", "have", "has", "had", "do", "does",
	"did", "will", "would", "shall", "should", "can", "could", "may",
	"might", "must", "with", "from", "into", "onto", "over", "under",
	"about", "after", "before", "between", "during", "through",

	// document boilerplate that title-cases like a name
	"dear", "sincerely", "regards", "contact", "please", "thank", "thanks",
	"attention", "subject", "reference", "regarding", "page", "date",
	"total", "amount", "balance", "account", "number", "statement",
	"invoice", "payment", "address", "phone", "email", "name", "customer",
	"client", "member", "user", "holder", "branch", "bank", "company",
	"limited", "department", "street", "avenue", "road", "city", "state",
	"country", "monday", "tuesday", "wednesday", "thursday", "friday",
	"saturday", "sunday", "january", "february", "march", "april", "may",
	"june", "july", "august", "september", "october", "november",
	"december", "new", "old", "first", "last", "next", "previous",
	"summary", "details", "description", "important", "confidential",
	"private", "notice", "terms", "conditions",
}
