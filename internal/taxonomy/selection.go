// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"github.com/google/uuid"

	"mozaik/internal/models"
)

// Selection is the editor's category choice on an article form: an
// optional parent category and an optional tag scoped to that parent.
// Exactly one category id is persisted per article; Selection is how
// the pair of form selects maps onto that single column.
type Selection struct {
	ParentID *uuid.UUID
	TagID    *uuid.UUID
}

// CategoryID resolves the selection to the id stored on the article.
// A selected tag always wins over the parent; the parent value only
// scopes which tags are offered. With neither selected the article is
// uncategorized, a legal state.
func (s Selection) CategoryID() *uuid.UUID {
	if s.TagID != nil {
		return s.TagID
	}
	return s.ParentID
}

// SetParent changes the parent selection. Whenever the parent actually
// changes, any chosen tag is cleared; a tag from the old parent is
// structurally invalid under the new one.
func (s *Selection) SetParent(id *uuid.UUID) {
	if !idsEqual(s.ParentID, id) {
		s.TagID = nil
	}
	s.ParentID = id
}

// SelectionFor reconstructs the form selection for a stored category id
// against the full category set. A tag yields both fields, a parent
// yields only ParentID, and a nil or dangling id yields the empty
// Selection; the editor shows an unresolved state, never an error.
func SelectionFor(categoryID *uuid.UUID, flat []models.Category) Selection {
	if categoryID == nil {
		return Selection{}
	}
	for _, c := range flat {
		if c.ID != *categoryID {
			continue
		}
		if c.ParentID != nil {
			return Selection{ParentID: c.ParentID, TagID: &c.ID}
		}
		return Selection{ParentID: &c.ID}
	}
	return Selection{}
}

// idsEqual compares two *uuid.UUID for equality (both nil or same value).
func idsEqual(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
