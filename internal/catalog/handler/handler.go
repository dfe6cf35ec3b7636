package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rescueops/internal/catalog"
	"rescueops/internal/transport/http/shared"
	pkgstrings "rescueops/pkg/platform/strings"
)

// Handler serves the reference-data CRUD endpoints: roles, tracks, and the
// certification type catalog.
type Handler struct {
	roles     catalog.RoleStore
	tracks    catalog.TrackStore
	certTypes catalog.CertificationTypeStore
	logger    *slog.Logger
}

func New(
	roles catalog.RoleStore,
	tracks catalog.TrackStore,
	certTypes catalog.CertificationTypeStore,
	logger *slog.Logger,
) *Handler {
	return &Handler{roles: roles, tracks: tracks, certTypes: certTypes, logger: logger}
}

// Register mounts the catalog routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/roles", h.handleListRoles)
	r.Post("/roles", h.handleCreateRole)
	r.Get("/roles/{name}", h.handleGetRole)
	r.Put("/roles/{name}", h.handleUpdateRole)

	r.Get("/tracks", h.handleListTracks)
	r.Post("/tracks", h.handleCreateTrack)
	r.Get("/tracks/{name}", h.handleGetTrack)
	r.Put("/tracks/{name}", h.handleUpdateTrack)

	r.Get("/certification-types", h.handleListCertTypes)
	r.Post("/certification-types", h.handleCreateCertType)
	r.Get("/certification-types/{name}", h.handleGetCertType)
	r.Put("/certification-types/{name}", h.handleUpdateCertType)
}

func (h *Handler) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var role catalog.Role
	if err := json.NewDecoder(r.Body).Decode(&role); err != nil {
		shared.WriteBadRequest(w, "invalid request body")
		return
	}
	if role.Name == "" {
		shared.WriteBadRequest(w, "name is required")
		return
	}
	role.AllowedTracks = pkgstrings.DedupeAndTrim(role.AllowedTracks)
	if err := h.roles.Create(r.Context(), &role); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, role)
}

func (h *Handler) handleGetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.roles.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var role catalog.Role
	if err := json.NewDecoder(r.Body).Decode(&role); err != nil {
		shared.WriteBadRequest(w, "invalid request body")
		return
	}
	role.Name = chi.URLParam(r, "name")
	role.AllowedTracks = pkgstrings.DedupeAndTrim(role.AllowedTracks)
	if err := h.roles.Update(r.Context(), &role); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) handleListTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.tracks.List(r.Context())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, tracks)
}

func (h *Handler) handleCreateTrack(w http.ResponseWriter, r *http.Request) {
	var track catalog.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		shared.WriteBadRequest(w, "invalid request body")
		return
	}
	if track.Name == "" {
		shared.WriteBadRequest(w, "name is required")
		return
	}
	track.RequiredCertifications = pkgstrings.DedupeAndTrim(track.RequiredCertifications)
	if err := h.tracks.Create(r.Context(), &track); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, track)
}

func (h *Handler) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	track, err := h.tracks.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, track)
}

func (h *Handler) handleUpdateTrack(w http.ResponseWriter, r *http.Request) {
	var track catalog.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		shared.WriteBadRequest(w, "invalid request body")
		return
	}
	track.Name = chi.URLParam(r, "name")
	track.RequiredCertifications = pkgstrings.DedupeAndTrim(track.RequiredCertifications)
	if err := h.tracks.Update(r.Context(), &track); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, track)
}

func (h *Handler) handleListCertTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.certTypes.List(r.Context())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, types)
}

func (h *Handler) handleCreateCertType(w http.ResponseWriter, r *http.Request) {
	var ct catalog.CertificationType
	if err := json.NewDecoder(r.Body).Decode(&ct); err != nil {
		shared.WriteBadRequest(w, "invalid request body")
		return
	}
	if ct.Name == "" {
		shared.WriteBadRequest(w, "name is required")
		return
	}
	if err := h.certTypes.Create(r.Context(), &ct); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, ct)
}

func (h *Handler) handleGetCertType(w http.ResponseWriter, r *http.Request) {
	ct, err := h.certTypes.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ct)
}

func (h *Handler) handleUpdateCertType(w http.ResponseWriter, r *http.Request) {
	var ct catalog.CertificationType
	if err := json.NewDecoder(r.Body).Decode(&ct); err != nil {
		shared.WriteBadRequest(w, "invalid request body")
		return
	}
	ct.Name = chi.URLParam(r, "name")
	if err := h.certTypes.Update(r.Context(), &ct); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ct)
}
