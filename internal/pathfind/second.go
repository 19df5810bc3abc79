package pathfind

import (
	"github.com/meghna-v/pathways/internal/graph"
)

// SecondShortest finds the cheapest simple path between start and end whose
// edge set differs from first in at least one edge. It removes each edge of
// first in turn and re-runs Dijkstra on the reduced graph, keeping the best
// candidate. Ties prefer the candidate found for the earliest removed edge,
// then fall back to Dijkstra's own deterministic tie-break.
//
// If first is the not-found sentinel, or first is a single-node path
// (start == end), no distinct route exists and the sentinel is returned.
func SecondShortest(g *graph.Graph, start, end string, first PathResult) (PathResult, error) {
	if !first.Found() || len(first.Path) < 2 {
		return NotFound(), nil
	}

	firstEdges := edgeSet(first.Path)
	best := NotFound()

	for i := 0; i < len(first.Path)-1; i++ {
		reduced := g.WithoutEdge(first.Path[i], first.Path[i+1])
		candidate, err := Shortest(reduced, start, end)
		if err != nil {
			return NotFound(), err
		}
		if !candidate.Found() || sameEdges(edgeSet(candidate.Path), firstEdges) {
			continue
		}
		// Strict < keeps the earliest deviation edge on cost ties.
		if !best.Found() || candidate.Cost < best.Cost {
			best = candidate
		}
	}

	return best, nil
}

func edgeSet(path []string) map[[2]string]struct{} {
	set := make(map[[2]string]struct{}, len(path))
	for i := 0; i < len(path)-1; i++ {
		u, v := path[i], path[i+1]
		if u > v {
			u, v = v, u
		}
		set[[2]string{u, v}] = struct{}{}
	}
	return set
}

func sameEdges(a, b map[[2]string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for e := range a {
		if _, ok := b[e]; !ok {
			return false
		}
	}
	return true
}
