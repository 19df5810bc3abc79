package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/meghna-v/pathways/internal/graph"
	"github.com/meghna-v/pathways/internal/pathfind"
	"github.com/meghna-v/pathways/internal/service"
)

// APIHandlers exposes HTTP handlers for the path query API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.PathService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.PathService) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

type pathsRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type pathsResponse struct {
	Shortest pathfind.PathResult `json:"shortest"`
	Second   pathfind.PathResult `json:"second"`
}

type graphResponse struct {
	Graph graph.Adjacency `json:"graph"`
}

func (h *APIHandlers) handleGetPaths(w http.ResponseWriter, r *http.Request) {
	var payload pathsRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Start == "" || payload.End == "" {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}

	start := strings.ToUpper(payload.Start)
	end := strings.ToUpper(payload.End)

	result, err := h.service.Query(r.Context(), start, end)
	if err != nil {
		var unknown service.UnknownNodeError
		switch {
		case errors.As(err, &unknown):
			role := "start"
			if unknown.Node == end && unknown.Node != start {
				role = "end"
			}
			writeError(w, http.StatusBadRequest, role+" "+unknown.Error())
		case errors.Is(err, service.ErrQueryTimeout):
			h.logger.Error("path query timed out", "start", start, "end", end)
			writeError(w, http.StatusGatewayTimeout, "path computation timed out")
		default:
			h.logger.Error("path query failed", "error", err, "start", start, "end", end)
			writeError(w, http.StatusInternalServerError, "failed to compute paths")
		}
		return
	}

	respondJSON(w, http.StatusOK, pathsResponse{
		Shortest: result.Shortest,
		Second:   result.Second,
	})
}

func (h *APIHandlers) handleGraph(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, graphResponse{Graph: h.service.Describe()})
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{
		"detail": detail,
	})
}
