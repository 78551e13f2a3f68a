// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"mozaik/internal/models"
)

// nullCategory receives the columns of a LEFT JOINed category row.
// Every field is nullable because the join may not match: either the
// article is uncategorized or its category was deleted.
type nullCategory struct {
	ID          uuid.NullUUID
	Name        sql.NullString
	Slug        sql.NullString
	Description sql.NullString
	ParentID    uuid.NullUUID
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

// toModel converts the joined row to a Category, or nil when the join
// did not match.
func (n nullCategory) toModel() *models.Category {
	if !n.ID.Valid {
		return nil
	}
	c := &models.Category{
		ID:        n.ID.UUID,
		Name:      n.Name.String,
		Slug:      n.Slug.String,
		CreatedAt: n.CreatedAt.Time,
		UpdatedAt: n.UpdatedAt.Time,
	}
	if n.Description.Valid {
		c.Description = &n.Description.String
	}
	if n.ParentID.Valid {
		c.ParentID = &n.ParentID.UUID
	}
	return c
}

// nullAuthor receives the columns of a LEFT JOINed author row.
type nullAuthor struct {
	ID            uuid.NullUUID
	Name          sql.NullString
	Bio           sql.NullString
	AvatarMediaID uuid.NullUUID
	SocialLinks   []byte
	CreatedAt     sql.NullTime
	UpdatedAt     sql.NullTime
}

// toModel converts the joined row to an Author, or nil when the join
// did not match. Malformed social_links JSON is treated as absent.
func (n nullAuthor) toModel() *models.Author {
	if !n.ID.Valid {
		return nil
	}
	a := &models.Author{
		ID:        n.ID.UUID,
		Name:      n.Name.String,
		CreatedAt: n.CreatedAt.Time,
		UpdatedAt: n.UpdatedAt.Time,
	}
	if n.Bio.Valid {
		a.Bio = &n.Bio.String
	}
	if n.AvatarMediaID.Valid {
		a.AvatarMediaID = &n.AvatarMediaID.UUID
	}
	if len(n.SocialLinks) > 0 {
		var links models.SocialLinks
		if err := json.Unmarshal(n.SocialLinks, &links); err == nil {
			a.SocialLinks = &links
		}
	}
	return a
}
