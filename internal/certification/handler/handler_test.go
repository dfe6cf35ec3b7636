package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"rescueops/internal/audit"
	"rescueops/internal/catalog"
	"rescueops/internal/certification"
	"rescueops/internal/documents"
	"rescueops/internal/platform/logger"
	"rescueops/internal/roster"
)

func newCertificationRouter(t *testing.T) chi.Router {
	t.Helper()
	ctx := context.Background()
	log := logger.New()

	users := roster.NewInMemoryStore()
	certTypes := catalog.NewInMemoryCertificationTypeStore()
	store := certification.NewInMemoryStore()
	docs := documents.NewInMemoryStore()

	if err := users.Create(ctx, &roster.User{ID: "user-1", Email: "u1@example.org"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := certTypes.Create(ctx, &catalog.CertificationType{Name: "CPR", Expires: true}); err != nil {
		t.Fatalf("seed certification type: %v", err)
	}

	service := certification.NewService(store, certTypes, users, docs, audit.NewRecorder(log, 16), log)
	router := chi.NewRouter()
	New(store, service, log).Register(router)
	return router
}

func TestUploadJSONMetadata(t *testing.T) {
	router := newCertificationRouter(t)

	expiry := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	payload := map[string]any{
		"user_id":                 "user-1",
		"certification_type_name": "CPR",
		"expires_on":              expiry,
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/certifications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 uploading certification, got %d: %s", rec.Code, rec.Body.String())
	}

	var cert certification.Certification
	if err := json.NewDecoder(rec.Body).Decode(&cert); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if cert.ID == "" || cert.ExpiresOn == nil || !cert.ExpiresOn.Equal(expiry) {
		t.Fatalf("unexpected certification: %+v", cert)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/users/user-1/certifications", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	if listRec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing certifications, got %d", listRec.Code)
	}
	var certs []certification.Certification
	if err := json.NewDecoder(listRec.Body).Decode(&certs); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(certs) != 1 {
		t.Fatalf("expected one certification, got %d", len(certs))
	}
}

func TestUploadMultipartWithDocument(t *testing.T) {
	router := newCertificationRouter(t)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	meta, _ := json.Marshal(map[string]string{
		"user_id":                 "user-1",
		"certification_type_name": "CPR",
	})
	if err := form.WriteField("metadata", string(meta)); err != nil {
		t.Fatalf("write metadata part: %v", err)
	}
	part, err := form.CreateFormFile("document", "card.pdf")
	if err != nil {
		t.Fatalf("create file part: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.7 proof")); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/certifications", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 uploading multipart, got %d: %s", rec.Code, rec.Body.String())
	}

	var cert certification.Certification
	if err := json.NewDecoder(rec.Body).Decode(&cert); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	docReq := httptest.NewRequest(http.MethodGet, "/certifications/"+cert.ID+"/document", nil)
	docRec := httptest.NewRecorder()
	router.ServeHTTP(docRec, docReq)
	if docRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching document, got %d", docRec.Code)
	}
	data, _ := io.ReadAll(docRec.Body)
	if string(data) != "%PDF-1.7 proof" {
		t.Fatalf("unexpected document body %q", data)
	}
}

func TestUploadRejectsIncompleteMetadata(t *testing.T) {
	router := newCertificationRouter(t)

	body, _ := json.Marshal(map[string]string{"user_id": "user-1"})
	req := httptest.NewRequest(http.MethodPost, "/certifications", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete metadata, got %d", rec.Code)
	}
}

func TestDeleteSoftDeletes(t *testing.T) {
	router := newCertificationRouter(t)

	body, _ := json.Marshal(map[string]string{
		"user_id":                 "user-1",
		"certification_type_name": "CPR",
	})
	req := httptest.NewRequest(http.MethodPost, "/certifications", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var cert certification.Certification
	if err := json.NewDecoder(rec.Body).Decode(&cert); err != nil {
		t.Fatalf("decode: %v", err)
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/certifications/"+cert.ID, nil)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, delReq)
	if delRec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting, got %d", delRec.Code)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/users/user-1/certifications", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	var certs []certification.Certification
	if err := json.NewDecoder(listRec.Body).Decode(&certs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(certs) != 0 {
		t.Fatalf("expected deleted certification to vanish from listing, got %d", len(certs))
	}

	// The record itself survives as a soft-deleted row.
	getReq := httptest.NewRequest(http.MethodGet, "/certifications/"+cert.ID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching soft-deleted record, got %d", getRec.Code)
	}
}
