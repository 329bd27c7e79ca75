// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"testing"
)

func findPattern(t *testing.T, lib *Library, name string) UniversalPattern {
	t.Helper()
	for _, p := range lib.Universal() {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("universal pattern %q not found", name)
	return UniversalPattern{}
}

func TestUniversalBattery(t *testing.T) {
	lib := NewLibrary()

	tests := []struct {
		pattern string
		input   string
		match   string
	}{
		{"email", "Contact john.smith+work@example.co.uk today", "john.smith+work@example.co.uk"},
		{"phone_national", "Call (555) 123-4567 now", "(555) 123-4567"},
		{"phone_national", "Call 555-123-4567 now", "555-123-4567"},
		{"phone_national", "Phone:(555) 123-4567.", "(555) 123-4567"},
		{"phone_national", "Call +1 555-123-4567 now", "+1 555-123-4567"},
		{"phone_international", "Reach +44 20 7946 0958 anytime", "+44 20 7946 0958"},
		{"ssn", "SSN 123-45-6789 on file", "123-45-6789"},
		{"uk_nino", "NINO AB 12 34 56 C here", "AB 12 34 56 C"},
		{"date_numeric_dmy_mdy", "Due 12/31/2024 sharp", "12/31/2024"},
		{"date_numeric_ymd", "Issued 2024-01-15 by us", "2024-01-15"},
		{"date_textual_dmy", "Signed 3 March 2024 here", "3 March 2024"},
		{"date_textual_mdy", "Signed March 3, 2024 here", "March 3, 2024"},
		{"ipv4", "Host 192.168.1.100 online", "192.168.1.100"},
		{"ipv6", "Addr 2001:0db8:85a3:0000:0000:8a2e:0370:7334 is up", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{"card_visa", "Card 4111 1111 1111 1111 charged", "4111 1111 1111 1111"},
		{"card_mastercard", "Card 5500-0000-0000-0004 charged", "5500-0000-0000-0004"},
		{"card_amex", "Card 3782 822463 10005 charged", "3782 822463 10005"},
		{"card_discover", "Card 6011000990139424 charged", "6011000990139424"},
		{"postal_us", "ZIP 90210-1234 area", "90210-1234"},
		{"postal_uk", "Postcode SW1A 1AA listed", "SW1A 1AA"},
		{"postal_ca", "Postal K1A 0B1 listed", "K1A 0B1"},
		{"currency_amount", "Balance -$1,234.56 CR shown", "-$1,234.56 CR"},
		{"mac_address", "MAC 00:1A:2B:3C:4D:5E seen", "00:1A:2B:3C:4D:5E"},
		{"iban", "IBAN GB29NWBK60161331926819 used", "GB29NWBK60161331926819"},
		{"passport_number", "Passport AB1234567 scanned", "AB1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.match, func(t *testing.T) {
			p := findPattern(t, lib, tt.pattern)
			got := p.Regex.FindString(tt.input)
			if got != tt.match {
				t.Errorf("pattern %s on %q = %q, want %q", tt.pattern, tt.input, got, tt.match)
			}
		})
	}
}

func TestUniversalBatteryNegatives(t *testing.T) {
	lib := NewLibrary()

	tests := []struct {
		pattern string
		input   string
	}{
		{"email", "not an email: john at example dot com"},
		{"ssn", "order 1234-56-789 is not an ssn"},
		{"card_visa", "plain 1234 5678 9012 3456 is not visa"},
		{"card_mastercard", "4111 1111 1111 1111 is not mastercard"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p := findPattern(t, lib, tt.pattern)
			if got := p.Regex.FindString(tt.input); got != "" {
				t.Errorf("pattern %s unexpectedly matched %q in %q", tt.pattern, got, tt.input)
			}
		})
	}
}

func TestPresetLookup(t *testing.T) {
	lib := NewLibrary()

	for _, id := range []string{"bank-statement", "medical-record", "identity-document", "invoice", "legal-contract", "custom"} {
		if _, ok := lib.Preset(id); !ok {
			t.Errorf("built-in preset %q missing", id)
		}
	}
	if _, ok := lib.Preset("nonexistent"); ok {
		t.Error("lookup of unknown preset succeeded")
	}

	custom, _ := lib.Preset(CustomPresetID)
	if len(custom.Patterns) != 0 || len(custom.Keywords) != 0 || len(custom.ContextClues) != 0 {
		t.Errorf("custom preset must carry no built-in data, got %+v", custom)
	}
}

func TestPresetIDsSorted(t *testing.T) {
	lib := NewLibrary()
	ids := lib.PresetIDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("preset ids not sorted: %v", ids)
		}
	}
}

func TestIsStopWord(t *testing.T) {
	lib := NewLibrary()

	tests := []struct {
		input    string
		expected bool
	}{
		{"the", true},
		{"The", true},
		{"account number", true},
		{"John Smith", false},
		{"the Smith", false},
		{"Monday", true},
		{"", true},
	}

	for _, tt := range tests {
		if got := lib.IsStopWord(tt.input); got != tt.expected {
			t.Errorf("IsStopWord(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestContainsStopWord(t *testing.T) {
	lib := NewLibrary()

	tests := []struct {
		input    string
		expected bool
	}{
		{"Contact Mr", true},
		{"John Smith", false},
		{"Dear John", true},
		{"Santos Almeida", false},
	}

	for _, tt := range tests {
		if got := lib.ContainsStopWord(tt.input); got != tt.expected {
			t.Errorf("ContainsStopWord(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestMerge(t *testing.T) {
	lib := NewLibrary()

	err := lib.Merge(PresetSpec{
		ID:       "payroll",
		Name:     "Payroll Register",
		Patterns: []string{`\b\d{4}-\d{4}\b`},
		Keywords: []string{"employee id"},
	})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	p, ok := lib.Preset("payroll")
	if !ok {
		t.Fatal("merged preset not found")
	}
	if len(p.Patterns) != 1 || !p.Patterns[0].MatchString("1234-5678") {
		t.Errorf("merged pattern not compiled: %+v", p.Patterns)
	}

	if err := lib.Merge(PresetSpec{ID: ""}); err == nil {
		t.Error("Merge accepted an empty preset id")
	}
	if err := lib.Merge(PresetSpec{ID: CustomPresetID}); err == nil {
		t.Error("Merge allowed redefining the custom preset")
	}
	if err := lib.Merge(PresetSpec{ID: "broken", Patterns: []string{`[`}}); err == nil {
		t.Error("Merge accepted an invalid regex")
	}
}
