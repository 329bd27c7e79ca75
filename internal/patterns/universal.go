// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import "regexp"

// compileUniversal builds the fixed, preset-independent PII battery. Every
// pattern is applied independently by the scanner; overlapping matches from
// different patterns are all retained there and collapsed later by fusion.
func compileUniversal() []UniversalPattern {
	defs := []struct {
		name    string
		typ     string
		pattern string
	}{
		{
			name:    "email",
			typ:     "email",
			pattern: `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
		},
		{
			name:    "phone_national",
			typ:     "phone",
			// The word boundary applies to the digit-led form only; a
			// leading "(" is itself a non-word character.
			pattern: `(?:\+?1[-.\s]?)?(?:\(\d{3}\)\s?|\b\d{3}[-.\s])\d{3}[-.\s]\d{4}\b`,
		},
		{
			name:    "phone_international",
			typ:     "phone",
			pattern: `\+\d{1,3}[\s.-]?\d{1,4}(?:[\s.-]?\d{2,4}){2,4}`,
		},
		{
			name:    "ssn",
			typ:     "government-id",
			pattern: `\b\d{3}-\d{2}-\d{4}\b`,
		},
		{
			name:    "uk_nino",
			typ:     "government-id",
			pattern: `\b[A-CEGHJ-PR-TW-Z]{2}\s?\d{2}\s?\d{2}\s?\d{2}\s?[A-D]\b`,
		},
		{
			name:    "date_numeric_dmy_mdy",
			typ:     "date",
			pattern: `\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`,
		},
		{
			name:    "date_numeric_ymd",
			typ:     "date",
			pattern: `\b\d{4}[/.-]\d{1,2}[/.-]\d{1,2}\b`,
		},
		{
			name:    "date_textual_dmy",
			typ:     "date",
			pattern: `\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}\b`,
		},
		{
			name:    "date_textual_mdy",
			typ:     "date",
			pattern: `\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}\b`,
		},
		{
			name:    "ipv4",
			typ:     "ip-address",
			pattern: `\b(?:\d{1,3}\.){3}\d{1,3}\b`,
		},
		{
			name:    "ipv6",
			typ:     "ip-address",
			pattern: `\b(?:[0-9A-Fa-f]{1,4}:){2,7}[0-9A-Fa-f]{1,4}\b`,
		},
		{
			name:    "card_visa",
			typ:     "card-number",
			pattern: `\b4\d{3}(?:[ -]?\d{4}){3}\b`,
		},
		{
			name:    "card_mastercard",
			typ:     "card-number",
			pattern: `\b5[1-5]\d{2}(?:[ -]?\d{4}){3}\b`,
		},
		{
			name:    "card_amex",
			typ:     "card-number",
			pattern: `\b3[47]\d{2}[ -]?\d{6}[ -]?\d{5}\b`,
		},
		{
			name:    "card_discover",
			typ:     "card-number",
			pattern: `\b6(?:011|5\d{2})(?:[ -]?\d{4}){3}\b`,
		},
		{
			name:    "postal_us",
			typ:     "postal-code",
			pattern: `\b\d{5}(?:-\d{4})?\b`,
		},
		{
			name:    "postal_uk",
			typ:     "postal-code",
			pattern: `\b[A-Z]{1,2}\d[A-Z\d]?\s?\d[A-Z]{2}\b`,
		},
		{
			name:    "postal_ca",
			typ:     "postal-code",
			pattern: `\b[ABCEGHJ-NPRSTVXY]\d[A-Z]\s?\d[A-Z]\d\b`,
		},
		{
			name:    "currency_amount",
			typ:     "currency",
			pattern: `[-+]?[$€£]\s?\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?(?:\s?(?:CR|DR))?`,
		},
		{
			name:    "mac_address",
			typ:     "mac-address",
			pattern: `\b(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}\b`,
		},
		{
			name:    "iban",
			typ:     "account-number",
			pattern: `\b[A-Z]{2}\d{2}[A-Z0-9]{10,30}\b`,
		},
		{
			name:    "passport_number",
			typ:     "government-id",
			pattern: `\b[A-Z]{1,2}\d{7,9}\b`,
		},
	}

	out := make([]UniversalPattern, len(defs))
	for i, d := range defs {
		out[i] = UniversalPattern{
			Name:  d.name,
			Type:  d.typ,
			Regex: regexp.MustCompile(d.pattern),
		}
	}
	return out
}
