// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mozaik/internal/models"
)

func TestHomepageRendersPublishedArticles(t *testing.T) {
	env := newTestEnv(t)

	parent, _ := seedParentWithTag(t, env.CategoryStore, "Zdravlje HP", "zdravlje-hp", "Recepti HP", "zdravlje-hp-recepti")
	seedPublishedArticle(t, env.ArticleStore, "Naslovnica test članak", "naslovnica-test-clanak", &parent.ID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	env.Public.Homepage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Naslovnica test članak") {
		t.Errorf("homepage missing seeded article title")
	}
	if !strings.Contains(body, "zdravlje-hp") {
		t.Errorf("homepage nav missing seeded category")
	}
}

func TestHomepageServedFromCacheOnSecondRequest(t *testing.T) {
	env := newTestEnv(t)

	parent, _ := seedParentWithTag(t, env.CategoryStore, "Cache HP", "cache-hp", "Tag HP", "cache-hp-tag")
	seedPublishedArticle(t, env.ArticleStore, "Prvi keširani", "prvi-kesirani", &parent.ID)

	first := httptest.NewRecorder()
	env.Public.Homepage(first, httptest.NewRequest(http.MethodGet, "/", nil))

	// A new article does not appear until the cache is invalidated.
	seedPublishedArticle(t, env.ArticleStore, "Drugi nakon keša", "drugi-nakon-kesa", &parent.ID)

	second := httptest.NewRecorder()
	env.Public.Homepage(second, httptest.NewRequest(http.MethodGet, "/", nil))

	if second.Body.String() != first.Body.String() {
		t.Errorf("second response not served from cache")
	}
	if strings.Contains(second.Body.String(), "Drugi nakon keša") {
		t.Errorf("cached homepage unexpectedly shows the new article")
	}
}

func TestCategoryPageTabsAndTagFilter(t *testing.T) {
	env := newTestEnv(t)

	parent, tag := seedParentWithTag(t, env.CategoryStore, "Obitelj CP", "obitelj-cp", "Djeca CP", "obitelj-cp-djeca")
	seedPublishedArticle(t, env.ArticleStore, "Članak na roditelju", "clanak-na-roditelju", &parent.ID)
	seedPublishedArticle(t, env.ArticleStore, "Članak na oznaci", "clanak-na-oznaci", &tag.ID)

	// Without a tag, the listing covers parent and tag articles.
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/obitelj-cp", nil), "category", "obitelj-cp")
	rec := httptest.NewRecorder()
	env.Public.CategoryPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Svi članci") {
		t.Errorf("category page missing the all-articles tab")
	}
	if !strings.Contains(body, "Članak na roditelju") || !strings.Contains(body, "Članak na oznaci") {
		t.Errorf("base listing should include both parent and tag articles")
	}

	// With the short tag fragment, only the tag's article remains.
	req = withChiURLParam(httptest.NewRequest(http.MethodGet, "/obitelj-cp?tag=djeca", nil), "category", "obitelj-cp")
	rec = httptest.NewRecorder()
	env.Public.CategoryPage(rec, req)

	body = rec.Body.String()
	if strings.Contains(body, "Članak na roditelju") {
		t.Errorf("tag-filtered listing should not include the parent article")
	}
	if !strings.Contains(body, "Članak na oznaci") {
		t.Errorf("tag-filtered listing missing the tag article")
	}
}

func TestCategoryPageStaleTagFallsBack(t *testing.T) {
	env := newTestEnv(t)

	parent, _ := seedParentWithTag(t, env.CategoryStore, "Ljepota CP", "ljepota-cp", "Njega CP", "ljepota-cp-njega")
	seedPublishedArticle(t, env.ArticleStore, "Preživjeli članak", "prezivjeli-clanak", &parent.ID)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/ljepota-cp?tag=nepostojeca", nil), "category", "ljepota-cp")
	rec := httptest.NewRecorder()
	env.Public.CategoryPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a stale tag", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Preživjeli članak") {
		t.Errorf("stale tag should fall back to the full category listing")
	}
}

func TestCategoryPageUnknownSlugIs404(t *testing.T) {
	env := newTestEnv(t)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/ne-postoji", nil), "category", "ne-postoji")
	rec := httptest.NewRecorder()
	env.Public.CategoryPage(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCategoryPageTagSlugHasNoLandingPage(t *testing.T) {
	env := newTestEnv(t)

	_, tag := seedParentWithTag(t, env.CategoryStore, "Moda CP", "moda-cp", "Trendovi CP", "moda-cp-trendovi")

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/"+tag.Slug, nil), "category", tag.Slug)
	rec := httptest.NewRecorder()
	env.Public.CategoryPage(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for a tag slug", rec.Code)
	}
}

func TestArticlePageRendersMarkdownBody(t *testing.T) {
	env := newTestEnv(t)

	parent, _ := seedParentWithTag(t, env.CategoryStore, "Kuhinja AP", "kuhinja-ap", "Slano AP", "kuhinja-ap-slano")
	art := seedPublishedArticle(t, env.ArticleStore, "Markdown članak", "markdown-clanak", &parent.ID)

	req := withChiURLParams(httptest.NewRequest(http.MethodGet, "/kuhinja-ap/"+art.Slug, nil),
		map[string]string{"category": "kuhinja-ap", "slug": art.Slug})
	rec := httptest.NewRecorder()
	env.Public.ArticlePage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Markdown članak") {
		t.Errorf("article page missing title")
	}
	if !strings.Contains(body, "Kuhinja AP") {
		t.Errorf("article page missing category label")
	}
}

func TestArticlePageDanglingCategoryShowsPlaceholder(t *testing.T) {
	env := newTestEnv(t)

	parent, err := env.CategoryStore.Create(&models.Category{Name: "Nestajuća", Slug: "nestajuca-ap"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	art := seedPublishedArticle(t, env.ArticleStore, "Siroče članak", "siroce-clanak", &parent.ID)

	if err := env.CategoryStore.Delete(parent.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	req := withChiURLParams(httptest.NewRequest(http.MethodGet, "/nestajuca-ap/"+art.Slug, nil),
		map[string]string{"category": "nestajuca-ap", "slug": art.Slug})
	rec := httptest.NewRecorder()
	env.Public.ArticlePage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for an orphaned article", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Nekategorizirano") {
		t.Errorf("orphaned article should render the placeholder category label")
	}
}

func TestArticlePageDraftIs404(t *testing.T) {
	env := newTestEnv(t)

	art, err := env.ArticleStore.Create(&models.Article{
		Title:  "Skica članak",
		Slug:   "skica-clanak-404",
		Body:   "Radni tekst.",
		Status: models.ArticleStatusDraft,
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	t.Cleanup(func() { env.ArticleStore.Delete(art.ID) })

	req := withChiURLParams(httptest.NewRequest(http.MethodGet, "/bilo-sto/"+art.Slug, nil),
		map[string]string{"category": "bilo-sto", "slug": art.Slug})
	rec := httptest.NewRecorder()
	env.Public.ArticlePage(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for a draft", rec.Code)
	}
}

func TestStaticPageRenders(t *testing.T) {
	env := newTestEnv(t)

	page, err := env.PageStore.Create(&models.Page{
		Title:  "O nama test",
		Slug:   "o-nama-test",
		Body:   "Mi smo **redakcija**.",
		Status: models.PageStatusPublished,
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	t.Cleanup(func() { env.PageStore.Delete(page.ID) })

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/page/o-nama-test", nil), "slug", "o-nama-test")
	rec := httptest.NewRecorder()
	env.Public.StaticPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "O nama test") {
		t.Errorf("static page missing title")
	}
	if !strings.Contains(body, "<strong>redakcija</strong>") {
		t.Errorf("static page body not rendered as markdown")
	}
}

func TestSearchFindsByTitle(t *testing.T) {
	env := newTestEnv(t)

	seedPublishedArticle(t, env.ArticleStore, "Jedinstveni pojam za pretragu", "jedinstveni-pojam-pretraga", nil)

	req := httptest.NewRequest(http.MethodGet, "/pretraga?q=jedinstveni+pojam", nil)
	rec := httptest.NewRecorder()
	env.Public.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Jedinstveni pojam za pretragu") {
		t.Errorf("search results missing the matching article")
	}
}

func TestRobotsServesSettingsOverride(t *testing.T) {
	env := newTestEnv(t)

	settings, err := env.SettingsStore.Get()
	if err != nil || settings == nil {
		t.Skipf("skipping: no settings row: %v", err)
	}
	orig := settings.RobotsTxt
	custom := "User-agent: *\nDisallow: /tajno\n"
	settings.RobotsTxt = &custom
	if err := env.SettingsStore.Update(settings); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	t.Cleanup(func() {
		settings.RobotsTxt = orig
		env.SettingsStore.Update(settings)
	})

	rec := httptest.NewRecorder()
	env.Public.Robots(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	if !strings.Contains(rec.Body.String(), "Disallow: /tajno") {
		t.Errorf("robots.txt override not served")
	}
}

func TestSitemapListsArticleURLs(t *testing.T) {
	env := newTestEnv(t)

	parent, _ := seedParentWithTag(t, env.CategoryStore, "Sitemap Kat", "sitemap-kat", "Pod SM", "sitemap-kat-pod")
	art := seedPublishedArticle(t, env.ArticleStore, "Sitemap članak", "sitemap-clanak", &parent.ID)

	rec := httptest.NewRecorder()
	env.Public.Sitemap(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/sitemap-kat/"+art.Slug) {
		t.Errorf("sitemap missing article URL, got:\n%s", body)
	}
	if !strings.Contains(body, "/sitemap-kat<") {
		t.Errorf("sitemap missing category landing URL")
	}
}
