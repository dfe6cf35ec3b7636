package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rescueops/internal/snapshot"
	"rescueops/internal/transport/http/shared"
)

// Handler serves compliance snapshots. Reads for the latest snapshot go
// through the cache; dated lookups hit the store directly since historical
// rows never change.
type Handler struct {
	aggregator *snapshot.Aggregator
	cache      *snapshot.Cache
	store      snapshot.Store
	logger     *slog.Logger
}

func New(aggregator *snapshot.Aggregator, cache *snapshot.Cache, store snapshot.Store, logger *slog.Logger) *Handler {
	return &Handler{aggregator: aggregator, cache: cache, store: store, logger: logger}
}

// Register mounts the snapshot routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/snapshots/generate", h.handleGenerate)
	r.Get("/snapshots/latest", h.handleLatest)
	r.Get("/snapshots/{date}", h.handleGet)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	snap, err := h.aggregator.GenerateAndSave(r.Context())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	h.cache.Invalidate(r.Context())
	shared.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	snap, err := h.cache.Latest(r.Context())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Get(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, snap)
}
