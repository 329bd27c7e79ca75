// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"strings"
	"testing"
)

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already clean", "John Smith", "John Smith"},
		{"internal run", "L  PINTO   DOS  SANTOS", "L PINTO DOS SANTOS"},
		{"tabs and newlines", "Account\tNumber:\n12345678", "Account Number: 12345678"},
		{"leading and trailing", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CollapseWhitespace(tt.input); got != tt.expected {
				t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "John Smith", "john smith"},
		{"collapses and lowercases", "  JOHN   SMITH ", "john smith"},
		{"mixed unicode case", "MÜLLER", strings.ToLower("MÜLLER")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKey(tt.input); got != tt.expected {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	inputs := []string{"John Smith", "  L  PINTO   DOS  SANTOS ", "a\tb\nc"}
	for _, input := range inputs {
		once := NormalizeKey(input)
		if twice := NormalizeKey(once); twice != once {
			t.Errorf("NormalizeKey not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestEntityValidate(t *testing.T) {
	tests := []struct {
		name    string
		entity  Entity
		wantErr bool
	}{
		{"valid", Entity{Text: "john@example.com", Score: 0.92, Source: SourcePattern}, false},
		{"boundary scores", Entity{Text: "x", Score: 0}, false},
		{"full confidence", Entity{Text: "x", Score: 1}, false},
		{"empty text", Entity{Text: "", Score: 0.5}, true},
		{"whitespace text", Entity{Text: "   ", Score: 0.5}, true},
		{"negative score", Entity{Text: "x", Score: -0.1}, true},
		{"score above one", Entity{Text: "x", Score: 1.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entity.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMustValidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustValid did not panic on an invalid entity")
		}
	}()
	MustValid(Entity{Text: "", Score: 0.5})
}

func TestBoundingBoxUnion(t *testing.T) {
	a := BoundingBox{X: 10, Y: 20, Width: 30, Height: 10}
	b := BoundingBox{X: 50, Y: 15, Width: 20, Height: 10}

	got := a.Union(b)
	want := BoundingBox{X: 10, Y: 15, Width: 60, Height: 15}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	// Union with itself is the identity.
	if self := a.Union(a); self != a {
		t.Errorf("Union(self) = %+v, want %+v", self, a)
	}
}
