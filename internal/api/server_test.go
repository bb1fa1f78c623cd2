package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deptree/pkg/manifest"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	return New(":0", logger)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestValidateAcyclic(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv.Handler(), "/v1/validate", validateRequest{
		Relations: []manifest.Relation{
			{Key: "a", Deps: []string{"b", "c"}},
			{Key: "b", Deps: nil},
			{Key: "c", Deps: nil},
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body)
	}
	var resp validateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !resp.Valid {
		t.Error("valid = false, want true")
	}
	if resp.Keys != 3 {
		t.Errorf("keys = %d, want 3", resp.Keys)
	}
	if resp.Edges != 2 {
		t.Errorf("edges = %d, want 2", resp.Edges)
	}
	if len(resp.Roots) != 1 || resp.Roots[0] != "a" {
		t.Errorf("roots = %v, want [a]", resp.Roots)
	}
}

func TestValidateCycle(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv.Handler(), "/v1/validate", validateRequest{
		Relations: []manifest.Relation{
			{Key: "x", Deps: []string{"y"}},
			{Key: "y", Deps: []string{"z"}},
			{Key: "z", Deps: []string{"y"}},
		},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusUnprocessableEntity, rec.Body)
	}
	var resp validateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Valid {
		t.Error("valid = true, want false")
	}
	want := []string{"y", "z", "y"}
	if len(resp.Cycle) != len(want) {
		t.Fatalf("cycle = %v, want %v", resp.Cycle, want)
	}
	for i := range want {
		if resp.Cycle[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", resp.Cycle, want)
		}
	}
}

func TestValidateSelfDependency(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv.Handler(), "/v1/validate", validateRequest{
		Relations: []manifest.Relation{
			{Key: "a", Deps: []string{"a"}},
		},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var resp validateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.Cycle) != 1 || resp.Cycle[0] != "a" {
		t.Errorf("cycle = %v, want [a]", resp.Cycle)
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", resp.Code)
	}
}

func TestValidateInvalidKey(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv.Handler(), "/v1/validate", validateRequest{
		Relations: []manifest.Relation{
			{Key: "", Deps: []string{"b"}},
		},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusBadRequest, rec.Body)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Code != "INVALID_KEY" {
		t.Errorf("code = %q, want INVALID_KEY", resp.Code)
	}
}

func TestRenderText(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv.Handler(), "/v1/render?format=text", validateRequest{
		Relations: []manifest.Relation{
			{Key: "a", Deps: []string{"b"}},
			{Key: "b", Deps: nil},
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body)
	}
	want := "a: b\nb:\n"
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q, want text/plain", ct)
	}
}

func TestRenderDOT(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv.Handler(), "/v1/render?format=dot", validateRequest{
		Relations: []manifest.Relation{
			{Key: "a", Deps: []string{"b"}},
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "digraph") {
		t.Errorf("body = %q, want DOT output", body)
	}
	if !strings.Contains(body, `"a" -> "b"`) {
		t.Errorf("body = %q, want edge a -> b", body)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv.Handler(), "/v1/render?format=svg", validateRequest{
		Relations: []manifest.Relation{{Key: "a"}},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Code != "INVALID_FORMAT" {
		t.Errorf("code = %q, want INVALID_FORMAT", resp.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	// Incoming IDs are echoed back unchanged.
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}
