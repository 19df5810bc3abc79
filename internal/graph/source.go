package graph

import (
	"context"
	"errors"
)

// Source is the contract a topology backend must satisfy. The server loads
// the adjacency once at startup and keeps probing the source for liveness
// afterwards.
type Source interface {
	Load(ctx context.Context) (Adjacency, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// SourceOptions configures a Neo4j-backed source.
type SourceOptions struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the Neo4j URI is not provided.
var ErrMissingURI = errors.New("graph: source URI is required")

// StaticSource serves a fixed in-process adjacency. It backs both the
// embedded reference topology and topologies loaded from a YAML file, and
// doubles as the test stand-in for the Neo4j source.
type StaticSource struct {
	desc    Adjacency
	pingErr error
}

// NewStaticSource wraps an adjacency description in a Source.
func NewStaticSource(desc Adjacency) *StaticSource {
	return &StaticSource{desc: desc}
}

// WithPingError forces Ping to return the supplied error (tests only).
func (s *StaticSource) WithPingError(err error) *StaticSource {
	s.pingErr = err
	return s
}

// Load returns a copy of the adjacency so callers can never alias the
// source's own map.
func (s *StaticSource) Load(context.Context) (Adjacency, error) {
	desc := make(Adjacency, len(s.desc))
	for id, neighbors := range s.desc {
		copied := make(map[string]float64, len(neighbors))
		for nb, w := range neighbors {
			copied[nb] = w
		}
		desc[id] = copied
	}
	return desc, nil
}

// Ping implements Source. A static topology is always reachable unless a
// test configured otherwise.
func (s *StaticSource) Ping(context.Context) error {
	return s.pingErr
}

// Close implements Source.
func (s *StaticSource) Close(context.Context) error {
	return nil
}
