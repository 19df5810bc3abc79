package server

import (
	"context"

	"github.com/meghna-v/pathways/internal/graph"
)

// HealthService defines behaviour for the liveness probe. A failing probe
// means "service unavailable", never "no path".
type HealthService interface {
	Probe(ctx context.Context) error
}

// SourceHealthService reports the reachability of the topology source. For
// a static source this always succeeds; for Neo4j it verifies connectivity.
type SourceHealthService struct {
	Source graph.Source
}

// Probe implements the HealthService interface.
func (s SourceHealthService) Probe(ctx context.Context) error {
	if s.Source == nil {
		return nil
	}
	return s.Source.Ping(ctx)
}
