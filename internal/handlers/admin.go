// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Mozaik CMS.
// Handlers are grouped by concern (admin, public, auth, api) and
// receive their dependencies through the handler struct.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mozaik/internal/cache"
	"mozaik/internal/metrics"
	"mozaik/internal/models"
	"mozaik/internal/render"
	"mozaik/internal/session"
	"mozaik/internal/slug"
	"mozaik/internal/storage"
	"mozaik/internal/store"
	"mozaik/internal/taxonomy"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer      *render.Renderer
	sessions      *session.Store
	articleStore  *store.ArticleStore
	categoryStore *store.CategoryStore
	authorStore   *store.AuthorStore
	pageStore     *store.PageStore
	mediaStore    *store.MediaStore
	variantStore  *store.VariantStore
	settingsStore *store.SettingsStore
	storageClient *storage.Client
	pageCache     *cache.PageCache
}

// NewAdmin creates a new Admin handler group. storageClient may be nil
// if S3 is not configured; the media library is then disabled.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, articleStore *store.ArticleStore, categoryStore *store.CategoryStore, authorStore *store.AuthorStore, pageStore *store.PageStore, mediaStore *store.MediaStore, variantStore *store.VariantStore, settingsStore *store.SettingsStore, storageClient *storage.Client, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:      renderer,
		sessions:      sessions,
		articleStore:  articleStore,
		categoryStore: categoryStore,
		authorStore:   authorStore,
		pageStore:     pageStore,
		mediaStore:    mediaStore,
		variantStore:  variantStore,
		settingsStore: settingsStore,
		storageClient: storageClient,
		pageCache:     pageCache,
	}
}

// idParam parses the {id} chi URL parameter.
func idParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// optString maps an empty form value to nil.
func optString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// Dashboard renders the admin dashboard with content stats and the
// most recently touched articles.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	articles, err := a.articleStore.List()
	if err != nil {
		slog.Error("dashboard list articles failed", "error", err)
	}

	var published, drafts int
	for _, art := range articles {
		switch art.Status {
		case models.ArticleStatusPublished:
			published++
		case models.ArticleStatusDraft:
			drafts++
		}
	}

	recent := articles
	if len(recent) > 5 {
		recent = recent[:5]
	}

	categories, _ := a.categoryStore.List()
	authors, _ := a.authorStore.List()

	a.renderer.AdminPage(w, r, "dashboard", &render.PageData{
		Title:   "Nadzorna ploča",
		Section: "dashboard",
		Data: map[string]any{
			"PublishedCount": published,
			"DraftCount":     drafts,
			"CategoryCount":  len(categories),
			"AuthorCount":    len(authors),
			"RecentArticles": recent,
		},
	})
}

// --- Articles CRUD ---

// articleStatusFilter narrows ?status= to the known status values.
func articleStatusFilter(v string) models.ArticleStatus {
	switch models.ArticleStatus(v) {
	case models.ArticleStatusDraft, models.ArticleStatusPublished, models.ArticleStatusArchived:
		return models.ArticleStatus(v)
	}
	return ""
}

// ArticlesList renders the article management page, optionally
// filtered by ?status= and ?category=.
func (a *Admin) ArticlesList(w http.ResponseWriter, r *http.Request) {
	status := articleStatusFilter(r.URL.Query().Get("status"))
	var categoryID *uuid.UUID
	if cid, err := uuid.Parse(r.URL.Query().Get("category")); err == nil {
		categoryID = &cid
	}

	articles, err := a.articleStore.ListFiltered(status, categoryID)
	if err != nil {
		slog.Error("list articles failed", "error", err)
	}

	flat, err := a.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	a.renderer.AdminPage(w, r, "articles", &render.PageData{
		Title:   "Članci",
		Section: "articles",
		Data: map[string]any{
			"Articles":       articles,
			"Parents":        taxonomy.Build(flat),
			"StatusFilter":   string(status),
			"CategoryFilter": r.URL.Query().Get("category"),
		},
	})
}

// articleFormData assembles everything the article form needs: the
// category tree for the two-step parent and tag selects, author and
// image choices, and the current selection.
func (a *Admin) articleFormData(article *models.Article, sel taxonomy.Selection, action string) map[string]any {
	flat, err := a.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}
	authors, err := a.authorStore.List()
	if err != nil {
		slog.Error("list authors failed", "error", err)
	}

	var images []models.Media
	if a.mediaStore != nil {
		media, err := a.mediaStore.List(200, 0)
		if err != nil {
			slog.Error("list media failed", "error", err)
		}
		for _, m := range media {
			if m.IsImage() {
				images = append(images, m)
			}
		}
	}

	return map[string]any{
		"Article":     article,
		"Selection":   sel,
		"Parents":     taxonomy.Build(flat),
		"Authors":     authors,
		"MediaImages": images,
		"Action":      action,
	}
}

// ArticleNew renders the new article form.
func (a *Admin) ArticleNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.AdminPage(w, r, "article_form", &render.PageData{
		Title:   "Novi članak",
		Section: "articles",
		Data: a.articleFormData(&models.Article{
			Status:    models.ArticleStatusDraft,
			MediaType: models.MediaTypeImage,
		}, taxonomy.Selection{}, "/admin/articles/new"),
	})
}

// selectionFromForm reads the two-step category choice from the form.
// A tag that does not belong to the chosen parent is dropped, which
// covers both a stale form and a tampered request.
func (a *Admin) selectionFromForm(r *http.Request) taxonomy.Selection {
	var sel taxonomy.Selection
	if pid, err := uuid.Parse(r.FormValue("parent_id")); err == nil {
		sel.ParentID = &pid
	}
	tid, err := uuid.Parse(r.FormValue("tag_id"))
	if err != nil || sel.ParentID == nil {
		return sel
	}
	tag, err := a.categoryStore.FindByID(tid)
	if err != nil {
		slog.Error("find tag failed", "id", tid, "error", err)
		return sel
	}
	if tag != nil && tag.ParentID != nil && *tag.ParentID == *sel.ParentID {
		sel.TagID = &tid
	}
	return sel
}

// articleFromForm builds an article from the submitted form values.
func (a *Admin) articleFromForm(r *http.Request, sel taxonomy.Selection) *models.Article {
	art := &models.Article{
		Title:         strings.TrimSpace(r.FormValue("title")),
		Slug:          strings.TrimSpace(r.FormValue("slug")),
		Body:          r.FormValue("body"),
		Excerpt:       optString(r.FormValue("excerpt")),
		FeaturedVideo: optString(strings.TrimSpace(r.FormValue("featured_video"))),
		MediaType:     models.MediaTypeImage,
		Status:        models.ArticleStatus(r.FormValue("status")),
		CategoryID:    sel.CategoryID(),
	}
	if r.FormValue("media_type") == string(models.MediaTypeVideo) {
		art.MediaType = models.MediaTypeVideo
	}
	if art.Slug == "" {
		art.Slug = slug.Generate(art.Title)
	}
	if art.Status == "" {
		art.Status = models.ArticleStatusDraft
	}
	if aid, err := uuid.Parse(r.FormValue("author_id")); err == nil {
		art.AuthorID = &aid
	}
	if fid, err := uuid.Parse(r.FormValue("featured_image_id")); err == nil {
		art.FeaturedImageID = &fid
	}
	return art
}

// ArticleCreate handles the new article form submission.
func (a *Admin) ArticleCreate(w http.ResponseWriter, r *http.Request) {
	sel := a.selectionFromForm(r)
	art := a.articleFromForm(r, sel)

	if errMsg := validateArticle(r.FormValue("title"), art.Slug, art.Body, r.FormValue("excerpt")); errMsg != "" {
		a.renderer.AdminPage(w, r, "article_form", &render.PageData{
			Title:   "Novi članak",
			Section: "articles",
			Flashes: errorFlash(errMsg),
			Data:    a.articleFormData(art, sel, "/admin/articles/new"),
		})
		return
	}

	created, err := a.articleStore.Create(art)
	if err != nil {
		slog.Error("create article failed", "error", err)
		a.renderer.AdminPage(w, r, "article_form", &render.PageData{
			Title:   "Novi članak",
			Section: "articles",
			Flashes: errorFlash("Spremanje nije uspjelo. Slug je možda već zauzet."),
			Data:    a.articleFormData(art, sel, "/admin/articles/new"),
		})
		return
	}

	if created.IsPublished() {
		metrics.ArticlesPublished.Inc()
	}
	a.invalidateArticleCaches(r.Context(), created)
	http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
}

// ArticleEdit renders the edit article form.
func (a *Admin) ArticleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	art, err := a.articleStore.FindByID(id)
	if err != nil {
		slog.Error("find article failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if art == nil {
		http.NotFound(w, r)
		return
	}

	flat, err := a.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}
	sel := taxonomy.SelectionFor(art.CategoryID, flat)

	a.renderer.AdminPage(w, r, "article_form", &render.PageData{
		Title:   "Uredi članak",
		Section: "articles",
		Data:    a.articleFormData(art, sel, "/admin/articles/"+id.String()),
	})
}

// ArticleUpdate handles the edit article form submission.
func (a *Admin) ArticleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	existing, err := a.articleStore.FindByID(id)
	if err != nil {
		slog.Error("find article failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	sel := a.selectionFromForm(r)
	art := a.articleFromForm(r, sel)
	art.ID = id
	art.PublishedAt = existing.PublishedAt

	action := "/admin/articles/" + id.String()
	if errMsg := validateArticle(r.FormValue("title"), art.Slug, art.Body, r.FormValue("excerpt")); errMsg != "" {
		a.renderer.AdminPage(w, r, "article_form", &render.PageData{
			Title:   "Uredi članak",
			Section: "articles",
			Flashes: errorFlash(errMsg),
			Data:    a.articleFormData(art, sel, action),
		})
		return
	}

	if err := a.articleStore.Update(art); err != nil {
		slog.Error("update article failed", "id", id, "error", err)
		a.renderer.AdminPage(w, r, "article_form", &render.PageData{
			Title:   "Uredi članak",
			Section: "articles",
			Flashes: errorFlash("Spremanje nije uspjelo. Slug je možda već zauzet."),
			Data:    a.articleFormData(art, sel, action),
		})
		return
	}

	if !existing.IsPublished() && art.IsPublished() {
		metrics.ArticlesPublished.Inc()
	}
	// The old category listing changes too when the article moved.
	a.invalidateArticleCaches(r.Context(), existing)
	a.invalidateArticleCaches(r.Context(), art)
	http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
}

// ArticleDelete handles article deletion.
func (a *Admin) ArticleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	art, err := a.articleStore.FindByID(id)
	if err != nil {
		slog.Error("find article failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if art != nil {
		if err := a.articleStore.Delete(id); err != nil {
			slog.Error("delete article failed", "id", id, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		a.invalidateArticleCaches(r.Context(), art)
	}
	http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
}

// invalidateArticleCaches drops the cached pages an article mutation
// can change: the homepage, the owning category listing in all its tag
// and page variants, and the article page itself. Pages cached under a
// non-canonical URL fall out on their own when the TTL expires.
func (a *Admin) invalidateArticleCaches(ctx context.Context, art *models.Article) {
	a.pageCache.InvalidateHomepage(ctx)
	if art.CategoryID == nil {
		return
	}
	landing := a.landingSlugByID(*art.CategoryID)
	if landing == "" {
		return
	}
	a.pageCache.InvalidateCategory(ctx, landing)
	a.pageCache.Invalidate(ctx, cache.ArticleKey(landing, art.Slug))
}

// landingSlugByID resolves a category id to the slug of its landing
// page: its own slug for a top-level category, the parent's for a tag.
func (a *Admin) landingSlugByID(id uuid.UUID) string {
	c, err := a.categoryStore.FindByID(id)
	if err != nil || c == nil {
		return ""
	}
	if c.ParentID == nil {
		return c.Slug
	}
	parent, err := a.categoryStore.FindByID(*c.ParentID)
	if err != nil || parent == nil {
		return ""
	}
	return parent.Slug
}

// --- Categories CRUD ---

// CategoriesList renders the category tree with per-node article
// counts.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	flat, err := a.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}
	parents := taxonomy.Build(flat)

	counts, err := a.articleStore.CountByCategory()
	if err != nil {
		slog.Error("count articles by category failed", "error", err)
	}
	taxonomy.AttachCounts(parents, counts)

	a.renderer.AdminPage(w, r, "categories", &render.PageData{
		Title:   "Kategorije",
		Section: "categories",
		Data:    map[string]any{"Parents": parents},
	})
}

// categoryFormData loads the parent choices for the category form. The
// category being edited never appears as its own parent option.
func (a *Admin) categoryFormData(c *models.Category, action string) map[string]any {
	flat, err := a.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}
	var parents []taxonomy.Parent
	for _, p := range taxonomy.Build(flat) {
		if p.ID != c.ID {
			parents = append(parents, p)
		}
	}
	return map[string]any{
		"Category": c,
		"Parents":  parents,
		"Action":   action,
	}
}

// CategoryNew renders the new category form.
func (a *Admin) CategoryNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.AdminPage(w, r, "category_form", &render.PageData{
		Title:   "Nova kategorija",
		Section: "categories",
		Data:    a.categoryFormData(&models.Category{}, "/admin/categories/new"),
	})
}

// categoryFromForm builds a category from the form. A subcategory slug
// always carries the parent's slug as a prefix, whether derived from
// the name or typed in by hand.
func (a *Admin) categoryFromForm(r *http.Request) *models.Category {
	c := &models.Category{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Slug:        strings.TrimSpace(r.FormValue("slug")),
		Description: optString(r.FormValue("description")),
	}
	if pid, err := uuid.Parse(r.FormValue("parent_id")); err == nil {
		c.ParentID = &pid
	}

	var parentSlug string
	if c.ParentID != nil {
		if parent, err := a.categoryStore.FindByID(*c.ParentID); err == nil && parent != nil {
			parentSlug = parent.Slug
		}
	}

	switch {
	case c.Slug == "" && parentSlug != "":
		c.Slug = slug.ForChild(parentSlug, c.Name)
	case c.Slug == "":
		c.Slug = slug.Generate(c.Name)
	case parentSlug != "" && !strings.HasPrefix(c.Slug, parentSlug+"-"):
		c.Slug = parentSlug + "-" + c.Slug
	}
	return c
}

// saveCategoryError maps a store error to a user-facing message.
func saveCategoryError(err error) string {
	if errors.Is(err, store.ErrNestedSubcategory) {
		return "Oznake se ne mogu ugnijezditi pod druge oznake."
	}
	return "Spremanje nije uspjelo. Slug je možda već zauzet."
}

// CategoryCreate handles the new category form submission.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	c := a.categoryFromForm(r)

	if errMsg := validateCategory(r.FormValue("name"), c.Slug); errMsg != "" {
		a.renderer.AdminPage(w, r, "category_form", &render.PageData{
			Title:   "Nova kategorija",
			Section: "categories",
			Flashes: errorFlash(errMsg),
			Data:    a.categoryFormData(c, "/admin/categories/new"),
		})
		return
	}

	if _, err := a.categoryStore.Create(c); err != nil {
		slog.Error("create category failed", "error", err)
		a.renderer.AdminPage(w, r, "category_form", &render.PageData{
			Title:   "Nova kategorija",
			Section: "categories",
			Flashes: errorFlash(saveCategoryError(err)),
			Data:    a.categoryFormData(c, "/admin/categories/new"),
		})
		return
	}

	// Navigation renders on every cached page.
	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryEdit renders the edit category form.
func (a *Admin) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	c, err := a.categoryStore.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if c == nil {
		http.NotFound(w, r)
		return
	}

	a.renderer.AdminPage(w, r, "category_form", &render.PageData{
		Title:   "Uredi kategoriju",
		Section: "categories",
		Data:    a.categoryFormData(c, "/admin/categories/"+id.String()),
	})
}

// CategoryUpdate handles the edit category form submission.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	c := a.categoryFromForm(r)
	c.ID = id

	action := "/admin/categories/" + id.String()
	if errMsg := validateCategory(r.FormValue("name"), c.Slug); errMsg != "" {
		a.renderer.AdminPage(w, r, "category_form", &render.PageData{
			Title:   "Uredi kategoriju",
			Section: "categories",
			Flashes: errorFlash(errMsg),
			Data:    a.categoryFormData(c, action),
		})
		return
	}

	if err := a.categoryStore.Update(c); err != nil {
		slog.Error("update category failed", "id", id, "error", err)
		a.renderer.AdminPage(w, r, "category_form", &render.PageData{
			Title:   "Uredi kategoriju",
			Section: "categories",
			Flashes: errorFlash(saveCategoryError(err)),
			Data:    a.categoryFormData(c, action),
		})
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryDelete handles category deletion. Deleting a top-level
// category cascades to its tags; articles keep their rows and fall
// back to the placeholder label on the public site.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := a.categoryStore.Delete(id); err != nil {
		slog.Error("delete category failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// --- Authors CRUD ---

// AuthorsList renders the author management page.
func (a *Admin) AuthorsList(w http.ResponseWriter, r *http.Request) {
	authors, err := a.authorStore.List()
	if err != nil {
		slog.Error("list authors failed", "error", err)
	}

	a.renderer.AdminPage(w, r, "authors", &render.PageData{
		Title:   "Autori",
		Section: "authors",
		Data:    map[string]any{"Authors": authors},
	})
}

// AuthorNew renders the new author form.
func (a *Admin) AuthorNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.AdminPage(w, r, "author_form", &render.PageData{
		Title:   "Novi autor",
		Section: "authors",
		Data: map[string]any{
			"Author": &models.Author{},
			"Action": "/admin/authors/new",
		},
	})
}

// authorFromForm builds an author from the form. SocialLinks stays nil
// when every profile field is blank.
func authorFromForm(r *http.Request) *models.Author {
	author := &models.Author{
		Name: strings.TrimSpace(r.FormValue("name")),
		Bio:  optString(r.FormValue("bio")),
	}
	links := models.SocialLinks{
		Instagram: strings.TrimSpace(r.FormValue("instagram")),
		Facebook:  strings.TrimSpace(r.FormValue("facebook")),
		Website:   strings.TrimSpace(r.FormValue("website")),
	}
	if links != (models.SocialLinks{}) {
		author.SocialLinks = &links
	}
	return author
}

// AuthorCreate handles the new author form submission.
func (a *Admin) AuthorCreate(w http.ResponseWriter, r *http.Request) {
	author := authorFromForm(r)

	if errMsg := validateAuthor(author.Name, r.FormValue("bio")); errMsg != "" {
		a.renderer.AdminPage(w, r, "author_form", &render.PageData{
			Title:   "Novi autor",
			Section: "authors",
			Flashes: errorFlash(errMsg),
			Data: map[string]any{
				"Author": author,
				"Action": "/admin/authors/new",
			},
		})
		return
	}

	if _, err := a.authorStore.Create(author); err != nil {
		slog.Error("create author failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/authors", http.StatusSeeOther)
}

// AuthorEdit renders the edit author form.
func (a *Admin) AuthorEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	author, err := a.authorStore.FindByID(id)
	if err != nil {
		slog.Error("find author failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if author == nil {
		http.NotFound(w, r)
		return
	}

	a.renderer.AdminPage(w, r, "author_form", &render.PageData{
		Title:   "Uredi autora",
		Section: "authors",
		Data: map[string]any{
			"Author": author,
			"Action": "/admin/authors/" + id.String(),
		},
	})
}

// AuthorUpdate handles the edit author form submission.
func (a *Admin) AuthorUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	author := authorFromForm(r)
	author.ID = id

	if errMsg := validateAuthor(author.Name, r.FormValue("bio")); errMsg != "" {
		a.renderer.AdminPage(w, r, "author_form", &render.PageData{
			Title:   "Uredi autora",
			Section: "authors",
			Flashes: errorFlash(errMsg),
			Data: map[string]any{
				"Author": author,
				"Action": "/admin/authors/" + id.String(),
			},
		})
		return
	}

	if err := a.authorStore.Update(author); err != nil {
		slog.Error("update author failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/authors", http.StatusSeeOther)
}

// AuthorDelete handles author deletion. Articles keep their rows; the
// byline simply disappears.
func (a *Admin) AuthorDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := a.authorStore.Delete(id); err != nil {
		slog.Error("delete author failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/authors", http.StatusSeeOther)
}

// --- Pages CRUD ---

// PagesList renders the static page management page.
func (a *Admin) PagesList(w http.ResponseWriter, r *http.Request) {
	pages, err := a.pageStore.List()
	if err != nil {
		slog.Error("list pages failed", "error", err)
	}

	a.renderer.AdminPage(w, r, "pages", &render.PageData{
		Title:   "Stranice",
		Section: "pages",
		Data:    map[string]any{"Pages": pages},
	})
}

// PageNew renders the new page form.
func (a *Admin) PageNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.AdminPage(w, r, "page_form", &render.PageData{
		Title:   "Nova stranica",
		Section: "pages",
		Data: map[string]any{
			"Page":   &models.Page{Status: models.PageStatusDraft},
			"Action": "/admin/pages/new",
		},
	})
}

func pageFromForm(r *http.Request) *models.Page {
	p := &models.Page{
		Title:  strings.TrimSpace(r.FormValue("title")),
		Slug:   strings.TrimSpace(r.FormValue("slug")),
		Body:   r.FormValue("body"),
		Status: models.PageStatus(r.FormValue("status")),
	}
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	if p.Status == "" {
		p.Status = models.PageStatusDraft
	}
	return p
}

// PageCreate handles the new page form submission.
func (a *Admin) PageCreate(w http.ResponseWriter, r *http.Request) {
	p := pageFromForm(r)

	if errMsg := validatePage(r.FormValue("title"), p.Slug, p.Body); errMsg != "" {
		a.renderer.AdminPage(w, r, "page_form", &render.PageData{
			Title:   "Nova stranica",
			Section: "pages",
			Flashes: errorFlash(errMsg),
			Data: map[string]any{
				"Page":   p,
				"Action": "/admin/pages/new",
			},
		})
		return
	}

	if _, err := a.pageStore.Create(p); err != nil {
		slog.Error("create page failed", "error", err)
		a.renderer.AdminPage(w, r, "page_form", &render.PageData{
			Title:   "Nova stranica",
			Section: "pages",
			Flashes: errorFlash("Spremanje nije uspjelo. Slug je možda već zauzet."),
			Data: map[string]any{
				"Page":   p,
				"Action": "/admin/pages/new",
			},
		})
		return
	}

	a.pageCache.Invalidate(r.Context(), cache.PageKey(p.Slug))
	http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
}

// PageEdit renders the edit page form.
func (a *Admin) PageEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	p, err := a.pageStore.FindByID(id)
	if err != nil {
		slog.Error("find page failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.NotFound(w, r)
		return
	}

	a.renderer.AdminPage(w, r, "page_form", &render.PageData{
		Title:   "Uredi stranicu",
		Section: "pages",
		Data: map[string]any{
			"Page":   p,
			"Action": "/admin/pages/" + id.String(),
		},
	})
}

// PageUpdate handles the edit page form submission.
func (a *Admin) PageUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	existing, err := a.pageStore.FindByID(id)
	if err != nil {
		slog.Error("find page failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	p := pageFromForm(r)
	p.ID = id

	if errMsg := validatePage(r.FormValue("title"), p.Slug, p.Body); errMsg != "" {
		a.renderer.AdminPage(w, r, "page_form", &render.PageData{
			Title:   "Uredi stranicu",
			Section: "pages",
			Flashes: errorFlash(errMsg),
			Data: map[string]any{
				"Page":   p,
				"Action": "/admin/pages/" + id.String(),
			},
		})
		return
	}

	if err := a.pageStore.Update(p); err != nil {
		slog.Error("update page failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// A renamed slug leaves the old cached page behind too.
	a.pageCache.Invalidate(r.Context(), cache.PageKey(existing.Slug))
	a.pageCache.Invalidate(r.Context(), cache.PageKey(p.Slug))
	http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
}

// PageDelete handles page deletion.
func (a *Admin) PageDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	p, err := a.pageStore.FindByID(id)
	if err != nil {
		slog.Error("find page failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if p != nil {
		if err := a.pageStore.Delete(id); err != nil {
			slog.Error("delete page failed", "id", id, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		a.pageCache.Invalidate(r.Context(), cache.PageKey(p.Slug))
	}
	http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
}

// --- Site settings ---

// SettingsPage renders the site settings form. Admin only.
func (a *Admin) SettingsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settingsStore.Get()
	if err != nil {
		slog.Error("load site settings failed", "error", err)
	}
	if settings == nil {
		settings = &models.SiteSettings{}
	}

	a.renderer.AdminPage(w, r, "settings", &render.PageData{
		Title:   "Postavke",
		Section: "settings",
		Data:    map[string]any{"Settings": settings},
	})
}

// SettingsUpdate handles the settings form submission and flushes the
// whole page cache, since the settings render on every public page.
func (a *Admin) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	settings := &models.SiteSettings{
		SiteTitle:         strings.TrimSpace(r.FormValue("site_title")),
		SiteDescription:   strings.TrimSpace(r.FormValue("site_description")),
		DefaultOGImageURL: optString(r.FormValue("default_og_image_url")),
		AnalyticsID:       optString(r.FormValue("analytics_id")),
		RobotsTxt:         optString(r.FormValue("robots_txt")),
	}
	if settings.SiteTitle == "" {
		a.renderer.AdminPage(w, r, "settings", &render.PageData{
			Title:   "Postavke",
			Section: "settings",
			Flashes: errorFlash("Naziv stranice je obavezan."),
			Data:    map[string]any{"Settings": settings},
		})
		return
	}

	if err := a.settingsStore.Update(settings); err != nil {
		slog.Error("update site settings failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}
