// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for both the public
// site and the admin interface. Templates are embedded in the binary.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"mozaik/internal/middleware"
	"mozaik/internal/session"
)

//go:embed templates/admin/*.html templates/public/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active sidebar/nav section (e.g., "dashboard", "articles")
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Renderer handles template parsing and execution.
type Renderer struct {
	admin   map[string]*template.Template
	public  map[string]*template.Template
	funcMap template.FuncMap
}

// standaloneTemplates lists admin templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

// croatianMonths holds genitive month names for date formatting.
var croatianMonths = [...]string{
	"siječnja", "veljače", "ožujka", "travnja", "svibnja", "lipnja",
	"srpnja", "kolovoza", "rujna", "listopada", "studenoga", "prosinca",
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with its base layout.
// When devMode is true, templates load CDN-hosted assets; when false,
// they reference compiled local static files.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		admin:  make(map[string]*template.Template),
		public: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "bg-gray-900 text-white"
				}
				return "text-gray-300 hover:bg-gray-700 hover:text-white"
			},
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			// isDev returns true when the app runs in development mode.
			// Used by templates to conditionally load CDN vs local assets.
			"isDev": func() bool {
				return devMode
			},
			// uuidEq compares a *uuid.UUID pointer with a uuid.UUID value.
			"uuidEq": func(ptr *uuid.UUID, val uuid.UUID) bool {
				return ptr != nil && *ptr == val
			},
			// hrDate formats a time as a Croatian long date, e.g.
			// "3. ožujka 2026.". Returns "" for nil.
			"hrDate": func(t *time.Time) string {
				if t == nil {
					return ""
				}
				return fmt.Sprintf("%d. %s %d.", t.Day(), croatianMonths[t.Month()-1], t.Year())
			},
			// statusIs compares a typed status value against a string.
			// Status fields are typed strings, which eq cannot compare
			// against string literals.
			"statusIs": func(status any, want string) bool {
				return fmt.Sprint(status) == want
			},
			// safeHTML marks pre-rendered article HTML as trusted.
			"safeHTML": func(s string) template.HTML {
				return template.HTML(s)
			},
			"lower": strings.ToLower,
		},
	}

	if err := r.parseSet(r.admin, "templates/admin"); err != nil {
		return nil, err
	}
	if err := r.parseSet(r.public, "templates/public"); err != nil {
		return nil, err
	}

	return r, nil
}

// parseSet parses every page template in dir, pairing each with the
// set's base.html layout (except standalone admin pages).
func (rn *Renderer) parseSet(dst map[string]*template.Template, dir string) error {
	entries, err := templateFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read embedded templates %s: %w", dir, err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}

		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		var parseErr error

		if strings.HasSuffix(dir, "admin") && standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(rn.funcMap).ParseFS(
				templateFS, dir+"/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(rn.funcMap).ParseFS(
				templateFS, dir+"/base.html", dir+"/"+name,
			)
		}

		if parseErr != nil {
			return fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		dst[tmplName] = tmpl
	}

	return nil
}

// AdminPage renders a full admin page. The CSRF token and session are
// injected from the request context.
func (rn *Renderer) AdminPage(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.admin[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// PublicPage renders a public page into w. It accepts an io.Writer so
// handlers can render into a buffer for the page cache before writing
// the response.
func (rn *Renderer) PublicPage(w io.Writer, name string, data *PageData) error {
	tmpl, ok := rn.public[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return executeTemplate(w, tmpl, "base.html", data)
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}
