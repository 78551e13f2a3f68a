// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPINavigationReturnsTree(t *testing.T) {
	env := newTestEnv(t)

	parent, tag := seedParentWithTag(t, env.CategoryStore, "API Kategorija", "api-kategorija", "API Oznaka", "api-kategorija-oznaka")

	rec := httptest.NewRecorder()
	env.API.Navigation(rec, httptest.NewRequest(http.MethodGet, "/api/navigation", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out struct {
		Categories []struct {
			ID   string `json:"id"`
			Slug string `json:"slug"`
			Tags []struct {
				Slug      string `json:"slug"`
				ShortSlug string `json:"short_slug"`
			} `json:"tags"`
		} `json:"categories"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var found bool
	for _, c := range out.Categories {
		if c.ID != parent.ID.String() {
			continue
		}
		found = true
		if len(c.Tags) != 1 {
			t.Fatalf("tags = %d, want 1", len(c.Tags))
		}
		if c.Tags[0].Slug != tag.Slug {
			t.Errorf("tag slug = %q, want %q", c.Tags[0].Slug, tag.Slug)
		}
		if c.Tags[0].ShortSlug != "oznaka" {
			t.Errorf("short slug = %q, want %q", c.Tags[0].ShortSlug, "oznaka")
		}
	}
	if !found {
		t.Errorf("seeded category missing from navigation")
	}
}

func TestAPISearchRequiresQuery(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.API.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAPISearchFindsPublished(t *testing.T) {
	env := newTestEnv(t)

	art := seedPublishedArticle(t, env.ArticleStore, "API pretraga pojam", "api-pretraga-pojam", nil)

	rec := httptest.NewRecorder()
	env.API.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=API+pretraga", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out struct {
		Results []struct {
			Slug string `json:"slug"`
		} `json:"results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var found bool
	for _, r := range out.Results {
		if r.Slug == art.Slug {
			found = true
		}
	}
	if !found {
		t.Errorf("seeded article missing from search results")
	}
}
