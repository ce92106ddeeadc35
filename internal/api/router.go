package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custsvc/interactions-api/internal/config"
	"github.com/custsvc/interactions-api/internal/logging"
	"github.com/custsvc/interactions-api/internal/store"
)

// NewRouter creates the HTTP router for the interactions API.
func NewRouter(st store.Store, cfg config.Config, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger.Named("http")))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	h := &handlers{
		store:        st,
		logger:       logger.Named("api"),
		defaultLimit: cfg.DefaultLimit,
		maxLimit:     cfg.MaxLimit,
	}

	r.Get("/health", h.GetHealth)
	r.Get("/interactions/{accountNumber}", h.ListInteractions)

	return r
}

type handlers struct {
	store        store.Store
	logger       logging.Logger
	defaultLimit int
	maxLimit     int
}
