package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meghna-v/pathways/internal/graph"
	"github.com/meghna-v/pathways/internal/service"
)

func newTestRouter(t *testing.T, source *graph.StaticSource) http.Handler {
	t.Helper()
	g, err := graph.New(graph.DefaultTopology())
	if err != nil {
		t.Fatalf("failed to build reference graph: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewPathService(g, 0)
	return NewRouter(logger, RouterDependencies{
		Health: SourceHealthService{Source: source},
		API:    NewAPIHandlers(logger, svc),
	})
}

func TestHandleGetPaths(t *testing.T) {
	router := newTestRouter(t, graph.NewStaticSource(graph.DefaultTopology()))

	req := httptest.NewRequest(http.MethodPost, "/get_paths", strings.NewReader(`{"start":"a","end":"g"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload pathsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Shortest.Cost != 5 {
		t.Fatalf("expected shortest cost 5, got %v", payload.Shortest.Cost)
	}
	if got := strings.Join(payload.Shortest.Path, ""); got != "ABCDG" {
		t.Fatalf("unexpected shortest path %v", payload.Shortest.Path)
	}
	if payload.Second.Cost != 6 {
		t.Fatalf("expected second cost 6, got %v", payload.Second.Cost)
	}
	if got := strings.Join(payload.Second.Path, ""); got != "ACDG" {
		t.Fatalf("unexpected second path %v", payload.Second.Path)
	}
}

func TestHandleGetPaths_NotFoundSentinel(t *testing.T) {
	g, err := graph.New(graph.Adjacency{
		"X": {"Y": 1},
		"Y": {"X": 1},
		"Z": {},
	})
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := NewAPIHandlers(logger, service.NewPathService(g, 0))

	req := httptest.NewRequest(http.MethodPost, "/get_paths", strings.NewReader(`{"start":"X","end":"Z"}`))
	rec := httptest.NewRecorder()
	handlers.handleGetPaths(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload pathsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Shortest.Cost != -1 || len(payload.Shortest.Path) != 0 {
		t.Fatalf("expected not-found sentinel, got %+v", payload.Shortest)
	}
	if payload.Second.Cost != -1 || len(payload.Second.Path) != 0 {
		t.Fatalf("expected not-found sentinel, got %+v", payload.Second)
	}
}

func TestHandleGetPaths_UnknownNode(t *testing.T) {
	router := newTestRouter(t, graph.NewStaticSource(graph.DefaultTopology()))

	req := httptest.NewRequest(http.MethodPost, "/get_paths", strings.NewReader(`{"start":"Z","end":"G"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(payload["detail"], `"Z"`) {
		t.Fatalf("expected detail to reference Z, got %q", payload["detail"])
	}
	if !strings.HasPrefix(payload["detail"], "start ") {
		t.Fatalf("expected detail to name the start slot, got %q", payload["detail"])
	}
}

func TestHandleGetPaths_BadRequests(t *testing.T) {
	router := newTestRouter(t, graph.NewStaticSource(graph.DefaultTopology()))

	cases := []struct {
		name string
		body string
	}{
		{name: "missing fields", body: `{"start":"A"}`},
		{name: "unknown field", body: `{"start":"A","end":"G","via":"C"}`},
		{name: "malformed json", body: `{"start":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/get_paths", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleGraph(t *testing.T) {
	router := newTestRouter(t, graph.NewStaticSource(graph.DefaultTopology()))

	req := httptest.NewRequest(http.MethodGet, "/graph", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload graphResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Graph) != 10 {
		t.Fatalf("expected 10 nodes, got %d", len(payload.Graph))
	}
	if payload.Graph["A"]["B"] != 1 {
		t.Fatalf("unexpected weight for A-B: %v", payload.Graph["A"]["B"])
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, graph.NewStaticSource(graph.DefaultTopology()))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Fatalf("expected healthy status, got %q", payload["status"])
	}
}

func TestHealth_Degraded(t *testing.T) {
	source := graph.NewStaticSource(graph.DefaultTopology()).
		WithPingError(errors.New("bolt connection refused"))
	router := newTestRouter(t, source)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["status"] != "degraded" {
		t.Fatalf("expected degraded status, got %q", payload["status"])
	}
}
