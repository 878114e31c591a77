// Package server exposes the tabscope analytics engine over HTTP: the
// import endpoint the browser extension posts snapshots to, the stats
// endpoints the dashboard reads, and optional static dashboard files.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tabscope/tabscope/internal/analytics"
	"github.com/tabscope/tabscope/internal/ingest"
	"github.com/tabscope/tabscope/internal/storage"
)

// New builds the tabscope HTTP server. staticDir may be empty, in which case
// only the API routes are served.
func New(addr, staticDir string, store storage.Store, logger *slog.Logger) *http.Server {
	if logger == nil {
		logger = slog.Default()
	}

	h := &handlers{
		store:     store,
		builder:   ingest.NewBuilder(store),
		trends:    analytics.NewTrends(store),
		suggester: analytics.NewSuggester(store),
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/api/import-data", h.handleImport)
	r.Get("/api/stats/trend", h.handleTrend)
	r.Get("/api/stats/tab-changes", h.handleTabChanges)
	r.Get("/api/stats/distribution", h.handleDistribution)
	r.Get("/api/suggest/groups", h.handleSuggestGroups)

	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}

	return &http.Server{
		Addr:    addr,
		Handler: r,
	}
}
