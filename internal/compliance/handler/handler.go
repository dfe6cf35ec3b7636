package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rescueops/internal/catalog"
	"rescueops/internal/certification"
	"rescueops/internal/compliance"
	"rescueops/internal/roster"
	"rescueops/internal/transport/http/shared"
)

// Handler exposes the compliance engine: a manual check trigger and
// per-member compliance reports.
type Handler struct {
	checker   *compliance.Checker
	users     roster.Store
	roles     catalog.RoleStore
	tracks    catalog.TrackStore
	certTypes catalog.CertificationTypeStore
	certs     certification.Store
	logger    *slog.Logger
}

func New(
	checker *compliance.Checker,
	users roster.Store,
	roles catalog.RoleStore,
	tracks catalog.TrackStore,
	certTypes catalog.CertificationTypeStore,
	certs certification.Store,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		checker:   checker,
		users:     users,
		roles:     roles,
		tracks:    tracks,
		certTypes: certTypes,
		certs:     certs,
		logger:    logger,
	}
}

// Register mounts the compliance routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/compliance/check", h.handleCheck)
	r.Get("/users/{id}/compliance", h.handleReport)
}

// handleCheck runs a full check cycle inline. The scheduler is the normal
// driver; this endpoint exists for operators to force a cycle.
func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.CheckAllUserCertifications(r.Context()); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.users.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	roles, err := h.roles.List(ctx)
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	tracks, err := h.tracks.List(ctx)
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	certTypes, err := h.certTypes.List(ctx)
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	holdings, err := h.certs.ListByUser(ctx, user.ID)
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}

	report := compliance.BuildReport(user, roles, tracks, certTypes, holdings, time.Now())
	shared.WriteJSON(w, http.StatusOK, report)
}
