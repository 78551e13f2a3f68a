// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package models

import (
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the publishing state of an article.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"
)

// MediaType selects the hero medium of an article: the featured image
// or an embedded video.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Article represents a magazine article. An article belongs to at most
// one category, either a top-level category or a tag under one, via
// CategoryID. Membership in a parent's listing is computed from the id
// set of the parent and its tags, never from a recursive join.
type Article struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Body            string        `json:"body"`
	Excerpt         *string       `json:"excerpt,omitempty"`
	FeaturedImageID *uuid.UUID    `json:"featured_image_id,omitempty"`
	FeaturedVideo   *string       `json:"featured_video,omitempty"`
	MediaType       MediaType     `json:"media_type"`
	CategoryID      *uuid.UUID    `json:"category_id"`
	AuthorID        *uuid.UUID    `json:"author_id"`
	MetaTitle       *string       `json:"meta_title,omitempty"`
	MetaDescription *string       `json:"meta_description,omitempty"`
	Status          ArticleStatus `json:"status"`
	PublishedAt     *time.Time    `json:"published_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Virtual relations populated by store methods. Category is nil
	// both for uncategorized articles and for dangling references;
	// callers render a placeholder label in either case.
	Category      *Category `json:"category,omitempty"`
	Author        *Author   `json:"author,omitempty"`
	FeaturedImage *Media    `json:"featured_image,omitempty"`
}

// IsPublished returns true if the article is in published status.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// HasVideo returns true if the article's hero medium is a video with a
// URL set.
func (a Article) HasVideo() bool {
	return a.MediaType == MediaTypeVideo && a.FeaturedVideo != nil && *a.FeaturedVideo != ""
}

// VideoEmbedURL converts the stored YouTube or Vimeo link into the
// player embed URL. Returns "" for anything else; callers fall back to
// the featured image.
func (a Article) VideoEmbedURL() string {
	if !a.HasVideo() {
		return ""
	}
	u, err := url.Parse(*a.FeaturedVideo)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Host, "www.")
	switch {
	case host == "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case host == "vimeo.com" || host == "player.vimeo.com":
		if id := path.Base(u.Path); id != "" && id != "/" && id != "." {
			return "https://player.vimeo.com/video/" + id
		}
	}
	return ""
}
