package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"rescueops/internal/certification"
	"rescueops/internal/transport/http/shared"
)

// maxDocumentBytes caps proof file uploads at 10 MiB.
const maxDocumentBytes = 10 << 20

// Handler serves certification holdings: per-member listings, uploads with
// replacement semantics, soft deletion, and proof document retrieval.
type Handler struct {
	store   certification.Store
	service *certification.Service
	logger  *slog.Logger
}

func New(store certification.Store, service *certification.Service, logger *slog.Logger) *Handler {
	return &Handler{store: store, service: service, logger: logger}
}

// Register mounts the certification routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/users/{id}/certifications", h.handleListByUser)
	r.Post("/certifications", h.handleUpload)
	r.Get("/certifications/{id}", h.handleGet)
	r.Delete("/certifications/{id}", h.handleDelete)
	r.Get("/certifications/{id}/document", h.handleDocument)
}

func (h *Handler) handleListByUser(w http.ResponseWriter, r *http.Request) {
	certs, err := h.store.ListByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, certs)
}

type uploadMetadata struct {
	UserID                string     `json:"user_id"`
	CertificationTypeName string     `json:"certification_type_name"`
	ExpiresOn             *time.Time `json:"expires_on,omitempty"`
}

// handleUpload accepts either a JSON body (metadata only) or multipart form
// data with a "metadata" JSON part and an optional "document" file part.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	var (
		meta uploadMetadata
		req  certification.UploadRequest
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
			shared.WriteBadRequest(w, "invalid multipart body")
			return
		}
		if err := json.Unmarshal([]byte(r.FormValue("metadata")), &meta); err != nil {
			shared.WriteBadRequest(w, "invalid metadata part")
			return
		}
		file, header, err := r.FormFile("document")
		if err == nil {
			defer file.Close()
			req.Document = file
			req.DocumentContentType = header.Header.Get("Content-Type")
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
			shared.WriteBadRequest(w, "invalid request body")
			return
		}
	}

	if meta.UserID == "" || meta.CertificationTypeName == "" {
		shared.WriteBadRequest(w, "user_id and certification_type_name are required")
		return
	}
	req.UserID = meta.UserID
	req.CertificationTypeName = meta.CertificationTypeName
	req.ExpiresOn = meta.ExpiresOn

	cert, err := h.service.Upload(r.Context(), req)
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, cert)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	cert, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, cert)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	if doc.ContentType != "" {
		w.Header().Set("Content-Type", doc.ContentType)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}
