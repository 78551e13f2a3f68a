// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialLinks holds an author's optional social profile URLs. Stored as
// a jsonb column so new networks can be added without a migration.
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Author represents a magazine author byline. Authors are editorial
// records, separate from CMS users: an editor can publish under any
// author byline.
type Author struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Bio           *string      `json:"bio,omitempty"`
	AvatarMediaID *uuid.UUID   `json:"avatar_media_id,omitempty"`
	SocialLinks   *SocialLinks `json:"social_links,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
