// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mozaik/internal/cache"
	"mozaik/internal/markdown"
	"mozaik/internal/metrics"
	"mozaik/internal/models"
	"mozaik/internal/render"
	"mozaik/internal/storage"
	"mozaik/internal/store"
	"mozaik/internal/taxonomy"
)

// ArticlesPerPage is the public listing page size, on the homepage and
// on category landing pages alike.
const ArticlesPerPage = 9

// uncategorizedLabel is shown on an article whose category was deleted
// out from under it.
const uncategorizedLabel = "Nekategorizirano"

// Public groups handlers for the reader-facing site. Every handler
// checks the Valkey page cache before touching PostgreSQL and stores
// the rendered page on miss; search results are the one exception.
type Public struct {
	renderer      *render.Renderer
	categoryStore *store.CategoryStore
	articleStore  *store.ArticleStore
	pageStore     *store.PageStore
	mediaStore    *store.MediaStore
	variantStore  *store.VariantStore
	settingsStore *store.SettingsStore
	storageClient *storage.Client
	pageCache     *cache.PageCache
	baseURL       string
}

// NewPublic creates a new Public handler group. storageClient may be
// nil when S3 is not configured; featured images then render without
// a URL.
func NewPublic(renderer *render.Renderer, categoryStore *store.CategoryStore, articleStore *store.ArticleStore, pageStore *store.PageStore, mediaStore *store.MediaStore, variantStore *store.VariantStore, settingsStore *store.SettingsStore, storageClient *storage.Client, pageCache *cache.PageCache, baseURL string) *Public {
	return &Public{
		renderer:      renderer,
		categoryStore: categoryStore,
		articleStore:  articleStore,
		pageStore:     pageStore,
		mediaStore:    mediaStore,
		variantStore:  variantStore,
		settingsStore: settingsStore,
		storageClient: storageClient,
		pageCache:     pageCache,
		baseURL:       strings.TrimRight(baseURL, "/"),
	}
}

// siteData loads the data every public page needs: the navigation tree
// and the site settings. Failures degrade to empty values rather than
// taking the page down.
func (p *Public) siteData() (nav []taxonomy.Parent, settings *models.SiteSettings) {
	flat, err := p.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}
	nav = taxonomy.Build(flat)

	settings, err = p.settingsStore.Get()
	if err != nil {
		slog.Error("load site settings failed", "error", err)
	}
	if settings == nil {
		settings = &models.SiteSettings{SiteTitle: "Mozaik"}
	}
	return nav, settings
}

// resolveFeaturedImages fills in the FeaturedImage relation with a
// public URL for each article that has one. Missing media rows and a
// missing storage client are both tolerated.
func (p *Public) resolveFeaturedImages(articles []models.Article) {
	if p.storageClient == nil || p.mediaStore == nil {
		return
	}
	for i := range articles {
		p.resolveFeaturedImage(&articles[i])
	}
}

func (p *Public) resolveFeaturedImage(a *models.Article) {
	if p.storageClient == nil || p.mediaStore == nil || a.FeaturedImageID == nil {
		return
	}
	m, err := p.mediaStore.FindByID(*a.FeaturedImageID)
	if err != nil {
		slog.Error("resolve featured image failed", "article", a.ID, "error", err)
		return
	}
	if m == nil {
		return
	}
	m.URL = p.storageClient.FileURL(m.S3Key)
	a.FeaturedImage = m
}

// serveCached writes a previously cached page and records the cache
// hit. Returns false on miss.
func (p *Public) serveCached(ctx context.Context, w http.ResponseWriter, key string) bool {
	if cached, ok := p.pageCache.Get(ctx, key); ok {
		metrics.CacheHit()
		writeHTML(w, cached)
		return true
	}
	metrics.CacheMiss()
	return false
}

// renderAndCache renders a public template into a buffer, stores it
// under the cache key when one is given, and writes it out.
func (p *Public) renderAndCache(ctx context.Context, w http.ResponseWriter, key, name string, data *render.PageData) {
	var buf bytes.Buffer
	if err := p.renderer.PublicPage(&buf, name, data); err != nil {
		slog.Error("render public page failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if key != "" {
		p.pageCache.Set(ctx, key, buf.Bytes())
	}
	writeHTML(w, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

// pageParam reads the 1-based ?page query parameter.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Homepage renders the newest published articles across all
// categories. Only the first page is cached; deeper pages are rare
// enough to render on demand.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := pageParam(r)

	cacheKey := ""
	if page == 1 {
		cacheKey = cache.HomepageKey()
		if p.serveCached(ctx, w, cacheKey) {
			return
		}
	}

	articles, total, err := p.articleStore.ListPublished(store.ListOptions{
		Page:     page,
		PageSize: ArticlesPerPage,
	})
	if err != nil {
		slog.Error("list published articles failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.resolveFeaturedImages(articles)

	nav, settings := p.siteData()
	p.renderAndCache(ctx, w, cacheKey, "home", &render.PageData{
		Title:   settings.SiteTitle,
		Section: "",
		Data: map[string]any{
			"Nav":        nav,
			"Settings":   settings,
			"Articles":   articles,
			"Page":       page,
			"TotalPages": taxonomy.PageCount(total, ArticlesPerPage),
			"PrevPage":   page - 1,
			"NextPage":   page + 1,
		},
	})
}

// CategoryPage renders a top-level category landing page with its
// filter tabs. ?tag narrows the listing to one tag, ?q searches titles
// within the current selection, ?page paginates. A stale tag fragment
// silently falls back to the whole category. Search results are never
// cached.
func (p *Public) CategoryPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "category")
	tagFragment := r.URL.Query().Get("tag")
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	page := pageParam(r)

	cacheKey := ""
	if query == "" {
		cacheKey = cache.CategoryKey(slug, tagFragment, page)
		if p.serveCached(ctx, w, cacheKey) {
			return
		}
	}

	parent, err := p.categoryStore.FindBySlug(slug)
	if err != nil {
		slog.Error("find category failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if parent == nil || parent.ParentID != nil {
		// Tags have no landing page of their own.
		p.notFound(w, r)
		return
	}

	children, err := p.categoryStore.ListChildren(parent.ID)
	if err != nil {
		slog.Error("list subcategories failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	tree := taxonomy.BuildOne(*parent, children)
	filter := taxonomy.ListingFilter(tree, tagFragment)

	activeTag := ""
	if filter.Tag != nil {
		activeTag = filter.Tag.ShortSlug
	}

	articles, total, err := p.articleStore.ListPublished(store.ListOptions{
		CategoryIDs: filter.CategoryIDs,
		TitleQuery:  query,
		Page:        page,
		PageSize:    ArticlesPerPage,
	})
	if err != nil {
		slog.Error("list category articles failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.resolveFeaturedImages(articles)

	nav, settings := p.siteData()
	p.renderAndCache(ctx, w, cacheKey, "category", &render.PageData{
		Title:   parent.Name + " | " + settings.SiteTitle,
		Section: parent.Slug,
		Data: map[string]any{
			"Nav":        nav,
			"Settings":   settings,
			"Parent":     tree,
			"Tabs":       taxonomy.Tabs(tree),
			"ActiveTag":  activeTag,
			"Query":      query,
			"Articles":   articles,
			"Page":       page,
			"TotalPages": taxonomy.PageCount(total, ArticlesPerPage),
			"PrevPage":   page - 1,
			"NextPage":   page + 1,
		},
	})
}

// ArticlePage renders a single published article. The category segment
// of the URL is cosmetic: the slug alone identifies the article, and a
// deleted category renders under a placeholder label.
func (p *Public) ArticlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catSlug := chi.URLParam(r, "category")
	artSlug := chi.URLParam(r, "slug")

	cacheKey := cache.ArticleKey(catSlug, artSlug)
	if p.serveCached(ctx, w, cacheKey) {
		return
	}

	article, err := p.articleStore.FindPublishedBySlug(artSlug)
	if err != nil {
		slog.Error("find article failed", "slug", artSlug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if article == nil {
		p.notFound(w, r)
		return
	}
	p.resolveFeaturedImage(article)

	bodyHTML, err := markdown.ToHTML(article.Body)
	if err != nil {
		slog.Error("render article body failed", "slug", artSlug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categoryLabel := uncategorizedLabel
	categorySlug := ""
	if article.Category != nil {
		categoryLabel = article.Category.Name
		categorySlug = p.landingSlug(article.Category)
	}

	nav, settings := p.siteData()
	p.renderAndCache(ctx, w, cacheKey, "article", &render.PageData{
		Title:   article.Title + " | " + settings.SiteTitle,
		Section: categorySlug,
		Data: map[string]any{
			"Nav":           nav,
			"Settings":      settings,
			"Article":       article,
			"BodyHTML":      bodyHTML,
			"CategoryLabel": categoryLabel,
			"CategorySlug":  categorySlug,
		},
	})
}

// landingSlug returns the slug of the landing page an article links
// back to: the category itself when top-level, its parent when the
// article sits on a tag. A dangling parent reference yields "".
func (p *Public) landingSlug(c *models.Category) string {
	if c.ParentID == nil {
		return c.Slug
	}
	parent, err := p.categoryStore.FindByID(*c.ParentID)
	if err != nil {
		slog.Error("find parent category failed", "id", *c.ParentID, "error", err)
		return ""
	}
	if parent == nil {
		return ""
	}
	return parent.Slug
}

// StaticPage renders a published static page such as o-nama or
// kontakt.
func (p *Public) StaticPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	cacheKey := cache.PageKey(slug)
	if p.serveCached(ctx, w, cacheKey) {
		return
	}

	page, err := p.pageStore.FindPublishedBySlug(slug)
	if err != nil {
		slog.Error("find page failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if page == nil {
		p.notFound(w, r)
		return
	}

	bodyHTML, err := markdown.ToHTML(page.Body)
	if err != nil {
		slog.Error("render page body failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	nav, settings := p.siteData()
	p.renderAndCache(ctx, w, cacheKey, "page", &render.PageData{
		Title:   page.Title + " | " + settings.SiteTitle,
		Section: "",
		Data: map[string]any{
			"Nav":      nav,
			"Settings": settings,
			"Page":     page,
			"BodyHTML": bodyHTML,
		},
	})
}

// Search renders site-wide title search results. Results are always
// rendered fresh; the query space is too wide to cache usefully.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var articles []models.Article
	if query != "" {
		var err error
		articles, err = p.articleStore.Search(query, 50)
		if err != nil {
			slog.Error("search failed", "query", query, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	nav, settings := p.siteData()
	p.renderAndCache(r.Context(), w, "", "search", &render.PageData{
		Title:   "Pretraga | " + settings.SiteTitle,
		Section: "",
		Data: map[string]any{
			"Nav":      nav,
			"Settings": settings,
			"Query":    query,
			"Articles": articles,
		},
	})
}

// sitemapURL is one <url> entry in the sitemap.
type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap emits an XML sitemap of the homepage, category landing
// pages, published articles and published static pages.
func (p *Public) Sitemap(w http.ResponseWriter, r *http.Request) {
	set := sitemapSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs, sitemapURL{Loc: p.baseURL + "/"})

	flat, err := p.categoryStore.List()
	if err != nil {
		slog.Error("sitemap categories failed", "error", err)
	}
	landing := make(map[uuid.UUID]string)
	for _, parent := range taxonomy.Build(flat) {
		set.URLs = append(set.URLs, sitemapURL{Loc: p.baseURL + "/" + parent.Slug})
		landing[parent.ID] = parent.Slug
		for _, child := range parent.Children {
			landing[child.ID] = parent.Slug
		}
	}

	articles, _, err := p.articleStore.ListPublished(store.ListOptions{Page: 1, PageSize: 5000})
	if err != nil {
		slog.Error("sitemap articles failed", "error", err)
	}
	for _, a := range articles {
		catSlug := uncategorizedSlugFallback
		if a.CategoryID != nil {
			if s, ok := landing[*a.CategoryID]; ok {
				catSlug = s
			}
		}
		entry := sitemapURL{Loc: fmt.Sprintf("%s/%s/%s", p.baseURL, catSlug, a.Slug)}
		if a.PublishedAt != nil {
			entry.LastMod = a.PublishedAt.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, entry)
	}

	pages, err := p.pageStore.ListPublished()
	if err != nil {
		slog.Error("sitemap pages failed", "error", err)
	}
	for _, pg := range pages {
		set.URLs = append(set.URLs, sitemapURL{Loc: p.baseURL + "/page/" + pg.Slug})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		slog.Error("encode sitemap failed", "error", err)
	}
}

// uncategorizedSlugFallback keeps sitemap article URLs well formed
// when the category row is gone; the article page ignores the segment.
const uncategorizedSlugFallback = "clanak"

// Robots serves robots.txt, from the site settings when an override is
// set.
func (p *Public) Robots(w http.ResponseWriter, r *http.Request) {
	body := "User-agent: *\nAllow: /\n\nSitemap: " + p.baseURL + "/sitemap.xml\n"
	settings, err := p.settingsStore.Get()
	if err != nil {
		slog.Error("load site settings failed", "error", err)
	}
	if settings != nil && settings.RobotsTxt != nil && strings.TrimSpace(*settings.RobotsTxt) != "" {
		body = *settings.RobotsTxt
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(body))
}

// NotFound is the site-wide 404 handler.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.notFound(w, r)
}

func (p *Public) notFound(w http.ResponseWriter, r *http.Request) {
	nav, settings := p.siteData()

	var buf bytes.Buffer
	err := p.renderer.PublicPage(&buf, "notfound", &render.PageData{
		Title:   "Stranica nije pronađena | " + settings.SiteTitle,
		Section: "",
		Data: map[string]any{
			"Nav":      nav,
			"Settings": settings,
		},
	})
	if err != nil {
		slog.Error("render 404 failed", "error", err)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(buf.Bytes())
}
