package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rescueops/internal/roster"
	"rescueops/internal/transport/http/shared"
	"rescueops/pkg/email"
)

// Handler serves the member roster CRUD endpoints.
type Handler struct {
	store  roster.Store
	logger *slog.Logger
}

func New(store roster.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts the roster routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/users", h.handleList)
	r.Post("/users", h.handleCreate)
	r.Get("/users/{id}", h.handleGet)
	r.Put("/users/{id}", h.handleUpdate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List(r.Context())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, users)
}

type userRequest struct {
	FirstName       string                  `json:"first_name"`
	LastName        string                  `json:"last_name"`
	Email           string                  `json:"email"`
	MembershipRoles []roster.MembershipRole `json:"membership_roles"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" {
		shared.WriteBadRequest(w, "email is required")
		return
	}
	// Roster imports sometimes carry only an address; reminder emails still
	// need a name to greet the member by.
	if req.FirstName == "" && req.LastName == "" {
		req.FirstName, req.LastName = email.DeriveNameFromEmail(req.Email)
	}

	now := time.Now()
	user := &roster.User{
		ID:              uuid.NewString(),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		MembershipRoles: req.MembershipRoles,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := h.store.Create(r.Context(), user); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.store.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteBadRequest(w, "invalid request body")
		return
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = req.Email
	existing.MembershipRoles = req.MembershipRoles
	existing.UpdatedAt = time.Now()

	if err := h.store.Update(r.Context(), existing); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, existing)
}
