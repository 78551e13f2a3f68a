// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents one row of the two-level category taxonomy.
// A row with a nil ParentID is a top-level category; a row with a
// non-nil ParentID is a tag (subcategory) of that parent. Slugs are
// unique across both levels.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// ArticleCount is a virtual field populated by store methods.
	ArticleCount int `json:"article_count"`
}

// IsChild returns true if the category is a tag under a parent category.
func (c *Category) IsChild() bool {
	return c.ParentID != nil
}
