package main

import (
	"context"
	"net/http"
	"time"

	"booknotes/internal/book"
	"booknotes/internal/config"
	"booknotes/internal/httpx"
	"booknotes/internal/search"
	"booknotes/internal/security"
	"booknotes/internal/web"
)

type deps struct {
	books  *book.Service
	search *search.Service
	views  *web.Views
	tokens security.TokenSource
}

// routes builds the full handler tree. ctx bounds the rate limiter janitor.
func routes(ctx context.Context, cfg config.Config, d deps) http.Handler {
	bookHandler := book.NewHTTPHandler(d.books, d.views)
	searchHandler := search.NewHTTPHandler(d.search)
	searchLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.SearchRateRPS, cfg.SearchRateBurst, cfg.TrustedProxies)

	write := func(h http.HandlerFunc) http.Handler {
		if cfg.RequireAdmin {
			return httpx.RequireAdmin(h)
		}
		return h
	}

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.books.Ping(pingCtx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /{$}", bookHandler.List)
	router.HandleFunc("GET /books/new", bookHandler.New)
	router.Handle("POST /books", write(bookHandler.Create))
	router.HandleFunc("GET /books/{id}/edit", bookHandler.Edit)
	router.Handle("POST /books/{id}", write(bookHandler.Update))
	router.Handle("POST /books/{id}/delete", write(bookHandler.Delete))

	router.Handle("GET /api/search", searchLimiter.Middleware(http.HandlerFunc(searchHandler.Search)))
	router.Handle("GET /static/", web.Static())

	gate := security.NewAdminGate(cfg.AdminPassword, cfg.AdminPasswordHash)
	policy := security.Policy{Production: cfg.Production()}

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.SecurityContextMiddleware(d.tokens, gate, policy),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}
