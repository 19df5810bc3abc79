// Package topogen produces synthetic symmetric topologies. It exists for
// randomized testing: generated graphs are small enough to brute-force, so
// the path engines can be cross-checked against exhaustive enumeration.
package topogen

import (
	"fmt"
	"math/rand"

	"github.com/meghna-v/pathways/internal/graph"
)

// Config drives the synthetic topology generator.
type Config struct {
	NumNodes    int
	ExtraEdges  int     // upper bound on edges added beyond the spanning tree
	MaxWeight   float64 // weights are drawn uniformly from 1..MaxWeight
	Seed        int64
	Disconnects int // nodes left without any edge
}

// DefaultConfig returns settings that keep brute-force enumeration cheap.
func DefaultConfig() Config {
	return Config{
		NumNodes:   8,
		ExtraEdges: 5,
		MaxWeight:  9,
		Seed:       42,
	}
}

// Generate builds a random adjacency description. All connected nodes are
// joined by a random spanning tree first, so the graph has exactly
// Disconnects isolated nodes. Weights are positive integers expressed as
// floats, matching the wire format.
func Generate(cfg Config) graph.Adjacency {
	def := DefaultConfig()
	if cfg.NumNodes <= 1 {
		cfg.NumNodes = def.NumNodes
	}
	if cfg.MaxWeight < 1 {
		cfg.MaxWeight = def.MaxWeight
	}
	if cfg.Disconnects < 0 || cfg.Disconnects >= cfg.NumNodes {
		cfg.Disconnects = 0
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	ids := make([]string, cfg.NumNodes)
	desc := make(graph.Adjacency, cfg.NumNodes)
	for i := range ids {
		ids[i] = fmt.Sprintf("N%02d", i+1)
		desc[ids[i]] = map[string]float64{}
	}

	connected := ids[:cfg.NumNodes-cfg.Disconnects]

	addEdge := func(u, v string) {
		w := float64(1 + rng.Intn(int(cfg.MaxWeight)))
		desc[u][v] = w
		desc[v][u] = w
	}

	// Spanning tree: each node attaches to a random earlier one.
	for i := 1; i < len(connected); i++ {
		addEdge(connected[i], connected[rng.Intn(i)])
	}

	for added := 0; added < cfg.ExtraEdges; added++ {
		u := connected[rng.Intn(len(connected))]
		v := connected[rng.Intn(len(connected))]
		if u == v {
			continue
		}
		if _, exists := desc[u][v]; exists {
			continue
		}
		addEdge(u, v)
	}

	return desc
}
