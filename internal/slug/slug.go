// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// croatian transliterates diacritics before the ASCII filter strips
// them, so "Djeca i trudnoća" becomes "djeca-i-trudnoca", not
// "djeca-i-trudnoa".
var croatian = strings.NewReplacer(
	"č", "c", "Č", "c",
	"ć", "c", "Ć", "c",
	"đ", "dj", "Đ", "dj",
	"š", "s", "Š", "s",
	"ž", "z", "Ž", "z",
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Što je mastitis? Vodič 2026" → "sto-je-mastitis-vodic-2026"
func Generate(s string) string {
	result := croatian.Replace(strings.TrimSpace(s))
	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// ForChild builds a child category's full slug from its parent's slug
// and a local name, keeping the conventional "{parent}-{local}" shape
// that short-slug tab matching relies on.
func ForChild(parentSlug, name string) string {
	local := Generate(name)
	if local == "" {
		return parentSlug
	}
	if strings.HasPrefix(local, parentSlug+"-") {
		return local
	}
	return parentSlug + "-" + local
}
