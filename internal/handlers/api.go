// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"mozaik/internal/store"
	"mozaik/internal/taxonomy"
)

// API groups the small read-only JSON surface consumed by external
// clients, such as the mobile app and newsletter tooling.
type API struct {
	categoryStore *store.CategoryStore
	articleStore  *store.ArticleStore
}

// NewAPI creates a new API handler group.
func NewAPI(categoryStore *store.CategoryStore, articleStore *store.ArticleStore) *API {
	return &API{
		categoryStore: categoryStore,
		articleStore:  articleStore,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response failed", "error", err)
	}
}

// Navigation returns the two-level category tree.
func (a *API) Navigation(w http.ResponseWriter, r *http.Request) {
	flat, err := a.categoryStore.List()
	if err != nil {
		slog.Error("api list categories failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	type tagView struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Slug      string `json:"slug"`
		ShortSlug string `json:"short_slug"`
	}
	type categoryView struct {
		ID   string    `json:"id"`
		Name string    `json:"name"`
		Slug string    `json:"slug"`
		Tags []tagView `json:"tags"`
	}

	tree := taxonomy.Build(flat)
	out := make([]categoryView, 0, len(tree))
	for _, p := range tree {
		cv := categoryView{
			ID:   p.ID.String(),
			Name: p.Name,
			Slug: p.Slug,
			Tags: make([]tagView, 0, len(p.Children)),
		}
		for _, c := range p.Children {
			cv.Tags = append(cv.Tags, tagView{
				ID:        c.ID.String(),
				Name:      c.Name,
				Slug:      c.Slug,
				ShortSlug: c.ShortSlug,
			})
		}
		out = append(out, cv)
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

// Search returns published articles whose title matches ?q.
func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q is required"})
		return
	}

	articles, err := a.articleStore.Search(query, 25)
	if err != nil {
		slog.Error("api search failed", "query", query, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	type articleView struct {
		ID          string  `json:"id"`
		Title       string  `json:"title"`
		Slug        string  `json:"slug"`
		Excerpt     *string `json:"excerpt,omitempty"`
		PublishedAt string  `json:"published_at,omitempty"`
	}

	out := make([]articleView, 0, len(articles))
	for _, art := range articles {
		av := articleView{
			ID:      art.ID.String(),
			Title:   art.Title,
			Slug:    art.Slug,
			Excerpt: art.Excerpt,
		}
		if art.PublishedAt != nil {
			av.PublishedAt = art.PublishedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		out = append(out, av)
	}

	writeJSON(w, http.StatusOK, map[string]any{"query": query, "results": out})
}
