//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeBackend serves just enough of the DRR API for the client to sign in
// and browse.
type fakeBackend struct {
	mu       sync.Mutex
	requests []string
	server   *httptest.Server
}

var e2eUser = map[string]any{
	"id":           "u-1",
	"email":        "ada@example.com",
	"firstname":    "Ada",
	"lastname":     "Lovelace",
	"company_id":   "c-1",
	"company_name": "Analytical",
	"verified":     true,
	"is_superuser": true,
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			fb.mu.Lock()
			fb.requests = append(fb.requests, req.Method+" "+req.URL.Path)
			fb.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})

	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "e2e-token",
			"token_type":   "bearer",
			"user":         e2eUser,
		})
	})
	r.Get("/auth/me", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, e2eUser)
	})
	r.Post("/auth/logout", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Signed out"})
	})
	r.Get("/domains/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "name": "example.com", "type": "DOMAIN", "issuer": "Example Registrar", "renew_date": "2030-01-15", "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"},
			{"id": 2, "name": "secure.example.org", "type": "SSL", "issuer": "Let's Encrypt", "renew_date": "2030-03-01", "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"},
		})
	})
	r.Get("/{platform}/integrations", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	r.Get("/users/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, []any{e2eUser})
	})

	fb.server = httptest.NewServer(r)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) URL() string {
	return fb.server.URL
}

func (fb *fakeBackend) Requests() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.requests...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
