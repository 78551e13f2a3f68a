// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"
)

func TestValidateArticle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		slug    string
		body    string
		excerpt string
		wantErr bool
	}{
		{"valid", "Naslov", "naslov", "Tekst", "", false},
		{"empty title", "", "slug", "Tekst", "", true},
		{"whitespace title", "   ", "slug", "Tekst", "", true},
		{"title too long", strings.Repeat("a", 301), "slug", "Tekst", "", true},
		{"slug too long", "Naslov", strings.Repeat("a", 301), "Tekst", "", true},
		{"body too long", "Naslov", "slug", strings.Repeat("a", 100_001), "", true},
		{"excerpt too long", "Naslov", "slug", "Tekst", strings.Repeat("a", 1_001), true},
		{"unicode title within limit", strings.Repeat("ž", 300), "slug", "Tekst", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateArticle(tt.title, tt.slug, tt.body, tt.excerpt)
			if (got != "") != tt.wantErr {
				t.Errorf("validateArticle() = %q, wantErr %v", got, tt.wantErr)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name    string
		catName string
		slug    string
		wantErr bool
	}{
		{"valid", "Zdravlje", "zdravlje", false},
		{"empty name", "", "zdravlje", true},
		{"name too long", strings.Repeat("a", 201), "slug", true},
		{"slug too long", "Zdravlje", strings.Repeat("a", 301), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateCategory(tt.catName, tt.slug)
			if (got != "") != tt.wantErr {
				t.Errorf("validateCategory() = %q, wantErr %v", got, tt.wantErr)
			}
		})
	}
}

func TestValidateAuthor(t *testing.T) {
	if got := validateAuthor("", ""); got == "" {
		t.Errorf("empty name should fail")
	}
	if got := validateAuthor("Iva Ivić", strings.Repeat("a", 2_001)); got == "" {
		t.Errorf("overlong bio should fail")
	}
	if got := validateAuthor("Iva Ivić", "Kratka biografija."); got != "" {
		t.Errorf("valid author rejected: %q", got)
	}
}
