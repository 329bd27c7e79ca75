// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import "regexp"

// builtinPresets returns the compiled built-in document-type profiles.
// Preset ids are unique; the "custom" preset always has empty built-in data
// and is populated only from user-entered keywords at scan time.
func builtinPresets() []Preset {
	defs := []struct {
		id           string
		name         string
		patterns     []string
		keywords     []string
		contextClues []string
	}{
		{
			id:   "bank-statement",
			name: "Bank Statement",
			patterns: []string{
				`\b\d{8,12}\b`,               // account numbers
				`\b\d{2}-\d{2}-\d{2}\b`,      // UK sort codes
				`\b[A-Z]{4}[A-Z0-9]{4,7}\b`,  // SWIFT/BIC codes
				`\b[A-Z]{2}\d{2}[A-Z0-9]{10,30}\b`, // IBAN
			},
			keywords: []string{
				"account number", "account no", "account", "iban", "sort code",
				"routing number", "swift", "bic", "card number", "reference",
			},
			contextClues: []string{
				"statement period", "opening balance", "closing balance",
				"available balance", "transaction history",
			},
		},
		{
			id:   "medical-record",
			name: "Medical Record",
			patterns: []string{
				`\b\d{3}[ -]?\d{3}[ -]?\d{4}\b`,  // NHS numbers
				`\bMRN[:#]?\s?\d{6,10}\b`,        // medical record numbers
				`\b[A-Z]\d{2}(?:\.\d{1,2})?\b`,   // ICD-10 codes
			},
			keywords: []string{
				"patient", "patient id", "patient name", "mrn", "nhs number",
				"date of birth", "dob", "diagnosis", "physician", "insurance id",
			},
			contextClues: []string{
				"medical history", "treatment plan", "discharge summary",
				"attending physician", "allergies",
			},
		},
		{
			id:   "identity-document",
			name: "Identity Document",
			patterns: []string{
				`\b[A-Z]{1,2}\d{6,9}\b`,            // passport / national id numbers
				`\b[A-Z]\d{7,8}\b`,                 // driving licence numbers
				`\b\d{2}\s?[A-Z]{2}\s?\d{5,6}\b`,   // id card serials
			},
			keywords: []string{
				"passport number", "document number", "national id",
				"place of birth", "nationality", "date of issue", "expiry date",
				"licence number",
			},
			contextClues: []string{
				"issuing authority", "machine readable zone", "holder signature",
			},
		},
		{
			id:   "invoice",
			name: "Invoice",
			patterns: []string{
				`\b(?:INV|INVOICE)[-#]?\d{4,10}\b`, // invoice numbers
				`\b[A-Z]{2}\d{9,12}\b`,             // VAT registration numbers
				`\bPO[-#]?\d{4,10}\b`,              // purchase order numbers
			},
			keywords: []string{
				"invoice number", "vat", "tax id", "purchase order", "bill to",
				"ship to", "amount due", "customer id",
			},
			contextClues: []string{
				"payment terms", "due date", "remittance advice",
			},
		},
		{
			id:   "legal-contract",
			name: "Legal Contract",
			patterns: []string{
				`\b(?:Case|Docket)\s?(?:No\.?|Number)[:#]?\s?[A-Z0-9-]{4,15}\b`,
			},
			keywords: []string{
				"party", "signatory", "witness", "executed by", "on behalf of",
				"registered office", "company number",
			},
			contextClues: []string{
				"hereinafter", "whereas", "in witness whereof",
			},
		},
		{
			id:           CustomPresetID,
			name:         "Custom",
			patterns:     nil,
			keywords:     nil,
			contextClues: nil,
		},
	}

	out := make([]Preset, len(defs))
	for i, d := range defs {
		p := Preset{
			ID:           d.id,
			Name:         d.name,
			Keywords:     d.keywords,
			ContextClues: d.contextClues,
		}
		for _, raw := range d.patterns {
			p.Patterns = append(p.Patterns, regexp.MustCompile(raw))
		}
		out[i] = p
	}
	return out
}
