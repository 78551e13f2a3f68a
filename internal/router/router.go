// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Mozaik CMS. Routes are organized into public, API, and admin groups
// with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mozaik/internal/handlers"
	"mozaik/internal/middleware"
	"mozaik/internal/session"
	"mozaik/internal/web"
)

// Options carries the wiring the router needs beyond the handler
// groups themselves.
type Options struct {
	Sessions     *session.Store
	SecureCookie bool
	AllowOrigins []string
}

// New creates and returns the configured chi router with all
// middleware and route groups wired up. The catch-all category and
// article routes register last so fixed paths always win.
func New(opts Options, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(opts.Sessions))

	// Health check and Prometheus scrape endpoint. No auth, no CSRF.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Embedded static assets.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	// Read-only JSON API with CORS for external clients.
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/navigation", api.Navigation)
		r.Get("/search", api.Search)
	})

	// Brute-force protection on the credential and search endpoints.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	searchLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Admin routes with CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(opts.SecureCookie))

		// Auth pages, accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA requires auth but not completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Post("/2fa/setup", auth.TwoFAVerifySubmit)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated, 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", admin.Dashboard)

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", admin.ArticlesList)
				r.Get("/new", admin.ArticleNew)
				r.Post("/new", admin.ArticleCreate)
				r.Get("/{id}", admin.ArticleEdit)
				r.Post("/{id}", admin.ArticleUpdate)
				r.Post("/{id}/delete", admin.ArticleDelete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoriesList)
				r.Get("/new", admin.CategoryNew)
				r.Post("/new", admin.CategoryCreate)
				r.Get("/{id}", admin.CategoryEdit)
				r.Post("/{id}", admin.CategoryUpdate)
				r.Post("/{id}/delete", admin.CategoryDelete)
			})

			r.Route("/authors", func(r chi.Router) {
				r.Get("/", admin.AuthorsList)
				r.Get("/new", admin.AuthorNew)
				r.Post("/new", admin.AuthorCreate)
				r.Get("/{id}", admin.AuthorEdit)
				r.Post("/{id}", admin.AuthorUpdate)
				r.Post("/{id}/delete", admin.AuthorDelete)
			})

			r.Route("/pages", func(r chi.Router) {
				r.Get("/", admin.PagesList)
				r.Get("/new", admin.PageNew)
				r.Post("/new", admin.PageCreate)
				r.Get("/{id}", admin.PageEdit)
				r.Post("/{id}", admin.PageUpdate)
				r.Post("/{id}/delete", admin.PageDelete)
			})

			r.Get("/account", auth.AccountPage)
			r.Post("/account/profile", auth.AccountUpdateProfile)
			r.Post("/account/password", auth.AccountUpdatePassword)

			r.Route("/media", func(r chi.Router) {
				r.Get("/", admin.MediaLibrary)
				r.Post("/upload", admin.MediaUpload)
				r.Post("/{id}/alt", admin.MediaUpdateAlt)
				r.Post("/{id}/delete", admin.MediaDelete)
			})

			// Site settings, admin role only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/settings", admin.SettingsPage)
				r.Post("/settings", admin.SettingsUpdate)
			})
		})
	})

	// Public site.
	r.Get("/", public.Homepage)
	r.With(searchLimiter.Middleware).Get("/pretraga", public.Search)
	r.Get("/sitemap.xml", public.Sitemap)
	r.Get("/robots.txt", public.Robots)
	r.Get("/page/{slug}", public.StaticPage)
	r.Get("/{category}", public.CategoryPage)
	r.Get("/{category}/{slug}", public.ArticlePage)

	r.NotFound(public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
