// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"mozaik/internal/cache"
	"mozaik/internal/database"
	"mozaik/internal/middleware"
	"mozaik/internal/models"
	"mozaik/internal/render"
	"mozaik/internal/session"
	"mozaik/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs
// migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "mozaik")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "mozaik")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Renderer      *render.Renderer
	Sessions      *session.Store
	ArticleStore  *store.ArticleStore
	CategoryStore *store.CategoryStore
	AuthorStore   *store.AuthorStore
	PageStore     *store.PageStore
	MediaStore    *store.MediaStore
	UserStore     *store.UserStore
	SettingsStore *store.SettingsStore
	PageCache     *cache.PageCache
	Admin         *Admin
	Auth          *Auth
	Public        *Public
	API           *API
}

// newTestEnv creates a complete test environment. S3 is never
// configured in tests; the handlers run in the degraded no-storage
// mode.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	articleStore := store.NewArticleStore(db)
	categoryStore := store.NewCategoryStore(db)
	authorStore := store.NewAuthorStore(db)
	pageStore := store.NewPageStore(db)
	mediaStore := store.NewMediaStore(db)
	variantStore := store.NewVariantStore(db)
	userStore := store.NewUserStore(db)
	settingsStore := store.NewSettingsStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	admin := NewAdmin(renderer, sessions, articleStore, categoryStore, authorStore,
		pageStore, mediaStore, variantStore, settingsStore, nil, pageCache)
	auth := NewAuth(renderer, sessions, userStore)
	public := NewPublic(renderer, categoryStore, articleStore, pageStore,
		mediaStore, variantStore, settingsStore, nil, pageCache, "http://localhost:8080")
	api := NewAPI(categoryStore, articleStore)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Renderer:      renderer,
		Sessions:      sessions,
		ArticleStore:  articleStore,
		CategoryStore: categoryStore,
		AuthorStore:   authorStore,
		PageStore:     pageStore,
		MediaStore:    mediaStore,
		UserStore:     userStore,
		SettingsStore: settingsStore,
		PageCache:     pageCache,
		Admin:         admin,
		Auth:          auth,
		Public:        public,
		API:           api,
	}
}

// testSession creates session data for an authenticated request.
func testSession(role string) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "test@mozaik.hr",
		DisplayName: "Testni Urednik",
		Role:        role,
		TwoFADone:   true,
	}
}

// withSession attaches session data the way LoadSession would.
func withSession(r *http.Request, sess *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	return withChiURLParams(r, map[string]string{key: value})
}

// withChiURLParams adds multiple chi URL parameters to a request.
func withChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// seedParentWithTag creates a top-level category with one tag under
// it, cleaned up when the test ends.
func seedParentWithTag(t *testing.T, cats *store.CategoryStore, parentName, parentSlug, tagName, tagSlug string) (*models.Category, *models.Category) {
	t.Helper()

	parent, err := cats.Create(&models.Category{Name: parentName, Slug: parentSlug})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	t.Cleanup(func() { cats.Delete(parent.ID) })

	tag, err := cats.Create(&models.Category{Name: tagName, Slug: tagSlug, ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return parent, tag
}

// seedPublishedArticle creates a published article in the given
// category, cleaned up when the test ends.
func seedPublishedArticle(t *testing.T, arts *store.ArticleStore, title, slug string, categoryID *uuid.UUID) *models.Article {
	t.Helper()

	art, err := arts.Create(&models.Article{
		Title:      title,
		Slug:       slug,
		Body:       "# " + title + "\n\nTestni sadržaj.",
		Status:     models.ArticleStatusPublished,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	t.Cleanup(func() { arts.Delete(art.ID) })
	return art
}
