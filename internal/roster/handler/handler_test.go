package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"rescueops/internal/platform/logger"
	"rescueops/internal/roster"
)

func newRosterRouter() (chi.Router, *roster.InMemoryStore) {
	store := roster.NewInMemoryStore()
	router := chi.NewRouter()
	New(store, logger.New()).Register(router)
	return router, store
}

func TestCreateAndGetUser(t *testing.T) {
	router, _ := newRosterRouter()

	payload := map[string]any{
		"first_name": "John",
		"last_name":  "Doe",
		"email":      "john.doe@example.org",
		"membership_roles": []map[string]any{
			{"role_name": "Crew Member", "track_name": "BLS"},
		},
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating user, got %d", rec.Code)
	}

	var created roster.User
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated user ID")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/users/"+created.ID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching user, got %d", getRec.Code)
	}

	var fetched roster.User
	if err := json.NewDecoder(getRec.Body).Decode(&fetched); err != nil {
		t.Fatalf("failed to decode get response: %v", err)
	}
	if fetched.Email != "john.doe@example.org" {
		t.Fatalf("unexpected email %q", fetched.Email)
	}
	if len(fetched.MembershipRoles) != 1 || fetched.MembershipRoles[0].RoleName != "Crew Member" {
		t.Fatalf("membership roles not persisted: %+v", fetched.MembershipRoles)
	}
}

func TestCreateUserRequiresEmail(t *testing.T) {
	router, _ := newRosterRouter()

	body, _ := json.Marshal(map[string]string{"first_name": "John"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without email, got %d", rec.Code)
	}
}

func TestGetUnknownUserReturns404(t *testing.T) {
	router, _ := newRosterRouter()

	req := httptest.NewRequest(http.MethodGet, "/users/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", rec.Code)
	}
}

func TestUpdateUserReplacesRoles(t *testing.T) {
	router, store := newRosterRouter()

	seed := &roster.User{
		ID:    "user-1",
		Email: "old@example.org",
		MembershipRoles: []roster.MembershipRole{
			{RoleName: "Crew Member", TrackName: "BLS"},
		},
	}
	if err := store.Create(httptest.NewRequest(http.MethodGet, "/", nil).Context(), seed); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	payload := map[string]any{
		"first_name":       "Jane",
		"last_name":        "Doe",
		"email":            "jane.doe@example.org",
		"membership_roles": []map[string]any{},
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, "/users/user-1", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating user, got %d", rec.Code)
	}

	var updated roster.User
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if updated.Email != "jane.doe@example.org" {
		t.Fatalf("email not updated: %q", updated.Email)
	}
	if len(updated.MembershipRoles) != 0 {
		t.Fatalf("roles not cleared: %+v", updated.MembershipRoles)
	}
}
