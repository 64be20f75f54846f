package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"filmorate/internal/platform/middleware"
	"filmorate/internal/user/service"
	"filmorate/internal/user/store"
)

func newUserRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewInMemoryUserStore(), service.WithLogger(logger))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	New(svc, logger).Register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUserLifecycleViaHandlers(t *testing.T) {
	router := newUserRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/users", map[string]any{
		"login": "joe",
		"email": "joe@x.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating user, got %d: %s", rec.Code, rec.Body.String())
	}

	var first struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&first); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("expected id 1, got %d", first.ID)
	}
	if first.Name != "joe" {
		t.Fatalf("expected name defaulted to login, got %q", first.Name)
	}

	rec = doJSON(t, router, http.MethodPost, "/users", map[string]any{
		"login": "amy",
		"email": "amy@x.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating second user, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/users/1/friends/2", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 adding friend, got %d: %s", rec.Code, rec.Body.String())
	}

	for user, friend := range map[string]int64{"1": 2, "2": 1} {
		rec = doJSON(t, router, http.MethodGet, "/users/"+user+"/friends", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 listing friends of %s, got %d", user, rec.Code)
		}
		var friends []struct {
			ID int64 `json:"id"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&friends); err != nil {
			t.Fatalf("decode friends: %v", err)
		}
		if len(friends) != 1 || friends[0].ID != friend {
			t.Fatalf("expected friends of %s to be [%d], got %+v", user, friend, friends)
		}
	}

	rec = doJSON(t, router, http.MethodDelete, "/users/1/friends/2", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 removing friend, got %d", rec.Code)
	}
}

func TestCreateUserValidationViaHandlers(t *testing.T) {
	router := newUserRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/users", map[string]any{
		"login": "joe",
		"email": "missing-at-sign",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "validation_error" {
		t.Fatalf("expected error category validation_error, got %q", body["error"])
	}
	if body["message"] == "" {
		t.Fatalf("expected a detail message in the error body")
	}
}

func TestUpdateUserViaHandlers(t *testing.T) {
	router := newUserRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/users", map[string]any{
		"login": "joe",
		"email": "joe@x.com",
		"name":  "Joseph",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	// Blank name and absent email must keep the stored values.
	rec = doJSON(t, router, http.MethodPut, "/users", map[string]any{
		"id":    1,
		"name":  "",
		"login": "joey",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating user, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Login string `json:"login"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.Name != "Joseph" || updated.Email != "joe@x.com" || updated.Login != "joey" {
		t.Fatalf("unexpected merge result: %+v", updated)
	}

	rec = doJSON(t, router, http.MethodPut, "/users", map[string]any{
		"id":    404,
		"login": "ghost",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "not_found" {
		t.Fatalf("expected error category not_found, got %q", body["error"])
	}
}

func TestMutualFriendsToleratesMissingUsers(t *testing.T) {
	router := newUserRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/users/1/friends/common/2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for mutual friends of missing users, got %d", rec.Code)
	}

	var mutual []any
	if err := json.NewDecoder(rec.Body).Decode(&mutual); err != nil {
		t.Fatalf("decode mutual friends: %v", err)
	}
	if len(mutual) != 0 {
		t.Fatalf("expected empty set, got %+v", mutual)
	}
}

func TestBadPathIDsAreValidationErrors(t *testing.T) {
	router := newUserRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/users/abc/friends/2", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}
