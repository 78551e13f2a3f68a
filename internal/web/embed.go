// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

// Package web provides embedded static assets (CSS) served at
// /static/. In Docker builds the compiled TailwindCSS files land here;
// in local development the checked-in fallbacks are enough.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var staticFS embed.FS

// Static returns the asset tree rooted at the directory contents, so
// the file server resolves /static/css/site.css to static/css/site.css.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The directory is embedded at compile time; this cannot fail
		// at runtime.
		panic(err)
	}
	return sub
}
