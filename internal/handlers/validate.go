// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for admin form fields.
const (
	maxTitleLen    = 300
	maxSlugLen     = 300
	maxBodyLen     = 100_000
	maxExcerptLen  = 1_000
	maxNameLen     = 200
	maxBioLen      = 2_000
	minPasswordLen = 8
)

// validateArticle checks article form inputs and returns the first
// error found, in the admin UI language.
func validateArticle(title, slug, body, excerpt string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Naslov je obavezan."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Naslov je predugačak (najviše 300 znakova)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug je predugačak (najviše 300 znakova)."
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Tekst je predugačak (najviše 100.000 znakova)."
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Sažetak je predugačak (najviše 1.000 znakova)."
	}
	return ""
}

// validatePage checks static page form inputs.
func validatePage(title, slug, body string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Naslov je obavezan."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Naslov je predugačak (najviše 300 znakova)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug je predugačak (najviše 300 znakova)."
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Tekst je predugačak (najviše 100.000 znakova)."
	}
	return ""
}

// validateCategory checks category form inputs.
func validateCategory(name, slug string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Naziv je obavezan."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Naziv je predugačak (najviše 200 znakova)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug je predugačak (najviše 300 znakova)."
	}
	return ""
}

// validateAuthor checks author form inputs.
// validatePassword checks a new password and its confirmation.
func validatePassword(password, confirm string) string {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Lozinka mora imati najmanje 8 znakova."
	}
	if password != confirm {
		return "Lozinke se ne podudaraju."
	}
	return ""
}

func validateAuthor(name, bio string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Ime je obavezno."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Ime je predugačko (najviše 200 znakova)."
	}
	if utf8.RuneCountInString(bio) > maxBioLen {
		return "Biografija je predugačka (najviše 2.000 znakova)."
	}
	return ""
}
