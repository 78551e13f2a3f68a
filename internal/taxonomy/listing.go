// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"strings"

	"github.com/google/uuid"
)

// AllArticlesLabel is the label of the synthetic first filter tab that
// shows the whole category.
const AllArticlesLabel = "Svi članci"

// Tab is one selectable filter tab on a category landing page. The
// empty Fragment means "no tag filter".
type Tab struct {
	Label    string
	Fragment string
}

// Filter describes which articles a category listing selects: the set
// of category ids to match, and the resolved tag when the listing is
// narrowed to one.
type Filter struct {
	CategoryIDs []uuid.UUID
	Tag         *Child
}

// BaseIDSet returns the parent's id unioned with all its children's
// ids, the "show everything under this category" id set.
func BaseIDSet(p Parent) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Children)+1)
	ids = append(ids, p.ID)
	for _, c := range p.Children {
		ids = append(ids, c.ID)
	}
	return ids
}

// MatchTag resolves a tag fragment against the parent's children: a
// child matches when its full slug equals the fragment or ends with
// "-" + fragment. Children are in name order and the first match wins,
// which is the documented tie-break when two slugs share a suffix.
// Returns nil for an empty or unmatched fragment.
func MatchTag(p Parent, fragment string) *Child {
	if fragment == "" {
		return nil
	}
	for i := range p.Children {
		c := &p.Children[i]
		if c.Slug == fragment || strings.HasSuffix(c.Slug, "-"+fragment) {
			return c
		}
	}
	return nil
}

// ListingFilter builds the article filter for a category landing page.
// With a resolved tag the listing narrows to exactly that child's id;
// with an empty or stale fragment it falls back to the base id set, so
// an invalid tag in the URL never renders an empty category.
func ListingFilter(p Parent, fragment string) Filter {
	if tag := MatchTag(p, fragment); tag != nil {
		return Filter{CategoryIDs: []uuid.UUID{tag.ID}, Tag: tag}
	}
	return Filter{CategoryIDs: BaseIDSet(p)}
}

// Tabs returns the filter tabs for a category landing page: the
// synthetic "all articles" tab followed by one tab per child, each
// keyed by its short slug.
func Tabs(p Parent) []Tab {
	tabs := make([]Tab, 0, len(p.Children)+1)
	tabs = append(tabs, Tab{Label: AllArticlesLabel, Fragment: ""})
	for _, c := range p.Children {
		tabs = append(tabs, Tab{Label: c.Name, Fragment: c.ShortSlug})
	}
	return tabs
}

// PageCount returns the number of listing pages for a total match
// count at the given page size.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
