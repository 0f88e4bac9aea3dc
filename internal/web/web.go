// Package web renders the catalog pages and serves the embedded static
// assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"booknotes/internal/httpx"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = []string{"index", "new", "edit"}

// Views holds one parsed template set per page, each combined with the
// shared layout.
type Views struct {
	pages map[string]*template.Template
}

// layoutData is what every template sees as its root.
type layoutData struct {
	Nonce      string
	IsAdmin    bool
	AdminValue string
	Page       any
}

func NewViews() (*Views, error) {
	v := &Views{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

var funcs = template.FuncMap{
	"rating": func(rating *float64) string {
		if rating == nil {
			return ""
		}
		return fmt.Sprintf("%g", *rating)
	},
}

// Render executes page into a buffer first so a template error never leaves a
// half-written response.
func (v *Views) Render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, ok := v.pages[page]
	if !ok {
		slog.Error("unknown page", slog.String("page", page))
		httpx.InternalError(w)
		return
	}

	root := layoutData{
		Nonce:   httpx.NonceFrom(r),
		IsAdmin: httpx.IsAdminFrom(r),
		Page:    data,
	}
	if root.IsAdmin {
		root.AdminValue = r.URL.Query().Get("admin")
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", root); err != nil {
		slog.Error("render failed",
			slog.String("page", page),
			slog.String("request_id", httpx.RequestIDFrom(r)),
			slog.String("error", err.Error()))
		httpx.InternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static serves the embedded assets; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
