// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package kripke

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/kripke/services/kripke/model"
)

func init() {
	// Set Gin to test mode to reduce noise
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(svc *Service) *gin.Engine {
	router := gin.New()
	handlers := NewHandlers(svc)
	v1 := router.Group("/v1")
	RegisterRoutes(v1, handlers)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandlers_HandleHealth(t *testing.T) {
	router := setupTestRouter(NewService(nil))

	w := doJSON(t, router, "GET", "/v1/kripke/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Version != ServiceVersion {
		t.Errorf("expected version %q, got %q", ServiceVersion, resp.Version)
	}
}

func TestHandlers_RequestIDEchoed(t *testing.T) {
	router := setupTestRouter(NewService(nil))

	req, _ := http.NewRequest("POST", "/v1/kripke/models", bytes.NewBufferString(`{"name":"m1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("expected X-Request-ID echoed, got %q", got)
	}
}

func TestHandlers_CreateModel(t *testing.T) {
	router := setupTestRouter(NewService(nil))

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid",
			body:       `{"name": "m1"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate",
			body:       `{"name": "m1"}`,
			wantStatus: http.StatusConflict,
			wantCode:   "MODEL_EXISTS",
		},
		{
			name:       "empty body",
			body:       "{}",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "name with spaces",
			body:       `{"name": "my model"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_NAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "POST", "/v1/kripke/models", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d (body: %s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantCode != "" {
				var resp ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal error: %v", err)
				}
				if resp.Code != tt.wantCode {
					t.Errorf("expected code %q, got %q", tt.wantCode, resp.Code)
				}
			}
		})
	}
}

func TestHandlers_EditAndExport(t *testing.T) {
	router := setupTestRouter(NewService(nil))

	steps := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{"POST", "/v1/kripke/models", `{"name":"m"}`, http.StatusCreated},
		{"POST", "/v1/kripke/models/m/worlds", `{"id":"w1"}`, http.StatusNoContent},
		{"POST", "/v1/kripke/models/m/worlds", `{"id":"w2"}`, http.StatusNoContent},
		{"POST", "/v1/kripke/models/m/relations", `{"source":"w1","target":"w2"}`, http.StatusNoContent},
		{"PUT", "/v1/kripke/models/m/valuations", `{"world":"w1","proposition":"p","value":true}`, http.StatusNoContent},
		{"PUT", "/v1/kripke/models/m/default-valuation", `{"value":false}`, http.StatusNoContent},
	}
	for _, s := range steps {
		if w := doJSON(t, router, s.method, s.path, s.body); w.Code != s.want {
			t.Fatalf("%s %s: expected %d, got %d (body: %s)", s.method, s.path, s.want, w.Code, w.Body.String())
		}
	}

	w := doJSON(t, router, "GET", "/v1/kripke/models/m", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", w.Code)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to unmarshal snapshot: %v", err)
	}
	if len(snap.Worlds) != 2 || len(snap.Relations) != 1 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if !snap.Valuations["w1"]["p"] {
		t.Error("expected p true at w1 in snapshot")
	}
}

func TestHandlers_EditErrors(t *testing.T) {
	router := setupTestRouter(NewService(nil))
	if w := doJSON(t, router, "POST", "/v1/kripke/models", `{"name":"m"}`); w.Code != http.StatusCreated {
		t.Fatalf("create: got %d", w.Code)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "relation with unknown world",
			method:     "POST",
			path:       "/v1/kripke/models/m/relations",
			body:       `{"source":"w1","target":"w2"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "WORLD_NOT_FOUND",
		},
		{
			name:       "valuation on unknown world",
			method:     "PUT",
			path:       "/v1/kripke/models/m/valuations",
			body:       `{"world":"w9","proposition":"p","value":true}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "WORLD_NOT_FOUND",
		},
		{
			name:       "unknown model",
			method:     "POST",
			path:       "/v1/kripke/models/nope/worlds",
			body:       `{"id":"w1"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "MODEL_NOT_FOUND",
		},
		{
			name:       "unknown closure",
			method:     "POST",
			path:       "/v1/kripke/models/m/closure",
			body:       `{"operations":["euclidean"]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "UNKNOWN_CLOSURE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d (body: %s)", tt.wantStatus, w.Code, w.Body.String())
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal error: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestHandlers_HandleEval(t *testing.T) {
	svc := NewService(nil)
	seedModel(t, svc)
	router := setupTestRouter(svc)

	w := doJSON(t, router, "POST", "/v1/kripke/models/demo/eval",
		`{"formula":"[]p -> p","world":"w3"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	var resp EvalResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	// w3 has no successors, so □p holds vacuously and p is true there.
	if !resp.Result {
		t.Error("expected (□p → p) true at w3")
	}
	if resp.Formula != "(□p → p)" {
		t.Errorf("expected canonical form, got %q", resp.Formula)
	}

	w = doJSON(t, router, "POST", "/v1/kripke/models/demo/eval",
		`{"formula":"p ∧","world":"w1"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("parse error: expected 400, got %d", w.Code)
	}

	w = doJSON(t, router, "POST", "/v1/kripke/models/demo/eval",
		`{"formula":"p","world":"w9"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown world: expected 404, got %d", w.Code)
	}
}

func TestHandlers_HandleEvalAll(t *testing.T) {
	svc := NewService(nil)
	seedModel(t, svc)
	router := setupTestRouter(svc)

	w := doJSON(t, router, "POST", "/v1/kripke/models/demo/eval-all", `{"formula":"p"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp EvalAllResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Results) != 3 {
		t.Errorf("expected 3 results, got %d", len(resp.Results))
	}
	if !resp.Results["w1"] || resp.Results["w2"] {
		t.Errorf("unexpected results: %v", resp.Results)
	}
}

func TestHandlers_HandleReachable(t *testing.T) {
	svc := NewService(nil)
	seedModel(t, svc)
	router := setupTestRouter(svc)

	w := doJSON(t, router, "GET", "/v1/kripke/models/demo/reachable?from=w1&to=w3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp ReachableResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Reachable {
		t.Error("expected reachable")
	}

	w = doJSON(t, router, "GET", "/v1/kripke/models/demo/reachable?from=w1&to=w3&max_steps=1", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Reachable {
		t.Error("expected unreachable within 1 step")
	}

	w = doJSON(t, router, "GET", "/v1/kripke/models/demo/reachable?from=w1", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing to: expected 400, got %d", w.Code)
	}
}

func TestHandlers_HandleImportModel(t *testing.T) {
	router := setupTestRouter(NewService(nil))

	body := `{"snapshot":{"W":["a","b"],"R":[["a","b"]],"V":{"a":{"p":true}}}}`
	w := doJSON(t, router, "PUT", "/v1/kripke/models/imp", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	// Re-import without overwrite conflicts.
	w = doJSON(t, router, "PUT", "/v1/kripke/models/imp", body)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}

	w = doJSON(t, router, "PUT", "/v1/kripke/models/imp",
		`{"snapshot":{"W":["a"]},"overwrite":true}`)
	if w.Code != http.StatusOK {
		t.Errorf("overwrite: expected 200, got %d", w.Code)
	}
}

func TestHandlers_HandleRender(t *testing.T) {
	svc := NewService(nil)
	seedModel(t, svc)
	router := setupTestRouter(svc)

	w := doJSON(t, router, "GET", "/v1/kripke/models/demo/render?format=mermaid", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp RenderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Format != "mermaid" || resp.Content == "" {
		t.Errorf("unexpected render response: %+v", resp)
	}

	w = doJSON(t, router, "GET", "/v1/kripke/models/demo/render?format=svg", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown format: expected 400, got %d", w.Code)
	}
}

func TestHandlers_HandleRemoveWorld(t *testing.T) {
	svc := NewService(nil)
	seedModel(t, svc)
	router := setupTestRouter(svc)

	w := doJSON(t, router, "DELETE", "/v1/kripke/models/demo/worlds/w2", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// Relations touching w2 are gone with it.
	w = doJSON(t, router, "GET", "/v1/kripke/models/demo", "")
	var snap model.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to unmarshal snapshot: %v", err)
	}
	if len(snap.Worlds) != 2 || len(snap.Relations) != 0 {
		t.Errorf("unexpected snapshot after removal: %+v", snap)
	}

	w = doJSON(t, router, "DELETE", "/v1/kripke/models/demo/worlds/w2", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for repeat removal, got %d", w.Code)
	}
}
