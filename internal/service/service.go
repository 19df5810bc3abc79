// Package service exposes the two-path computation as a single validated
// request/response operation.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meghna-v/pathways/internal/graph"
	"github.com/meghna-v/pathways/internal/pathfind"
)

// UnknownNodeError reports a query endpoint that is not a node of the graph.
// It is a client-input failure, distinct from the in-band not-found sentinel
// a structurally absent route produces.
type UnknownNodeError struct {
	Node string
}

func (e UnknownNodeError) Error() string {
	return fmt.Sprintf("node %q not found in graph", e.Node)
}

// ErrQueryTimeout indicates the defensive per-query deadline elapsed before
// the computation finished.
var ErrQueryTimeout = errors.New("service: query timed out")

// QueryResult bundles the two routes returned for a (start, end) pair.
// Either slot may independently hold the not-found sentinel.
type QueryResult struct {
	Shortest pathfind.PathResult `json:"shortest"`
	Second   pathfind.PathResult `json:"second"`
}

// PathService answers path queries over a single read-only graph. It keeps
// no per-query state, so one instance serves concurrent requests.
type PathService struct {
	g       *graph.Graph
	timeout time.Duration
}

// NewPathService constructs a PathService. A zero timeout disables the
// per-query deadline.
func NewPathService(g *graph.Graph, timeout time.Duration) *PathService {
	return &PathService{g: g, timeout: timeout}
}

// Query validates both endpoints, computes the shortest path and then the
// cheapest distinct alternative, and packages the pair. Absent routes are
// reported in-band via the sentinel; only malformed input or a blown
// deadline produce an error.
func (s *PathService) Query(ctx context.Context, start, end string) (QueryResult, error) {
	if !s.g.HasNode(start) {
		return QueryResult{}, UnknownNodeError{Node: start}
	}
	if !s.g.HasNode(end) {
		return QueryResult{}, UnknownNodeError{Node: end}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	type outcome struct {
		result QueryResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		shortest, err := pathfind.Shortest(s.g, start, end)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		second, err := pathfind.SecondShortest(s.g, start, end, shortest)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		done <- outcome{result: QueryResult{Shortest: shortest, Second: second}}
	}()

	select {
	case <-ctx.Done():
		return QueryResult{}, ErrQueryTimeout
	case out := <-done:
		return out.result, out.err
	}
}

// Describe returns the adjacency description of the underlying graph.
func (s *PathService) Describe() graph.Adjacency {
	return s.g.Describe()
}
