// Package graph holds the immutable weighted undirected graph the path
// engines run over, plus the sources it can be loaded from (static topology
// or a Neo4j instance).
package graph

import (
	"errors"
	"fmt"
	"sort"
)

// Adjacency describes a topology as node id -> neighbor id -> edge weight.
// It must be symmetric: if A lists B with weight w, B must list A with the
// same weight. This is the wire and file format for topologies.
type Adjacency map[string]map[string]float64

// Halfedge is one direction of an undirected edge as seen from a node.
type Halfedge struct {
	To     string
	Weight float64
}

// Graph is a validated, read-only weighted undirected graph. It is built
// once at startup and shared across concurrent queries without locking.
//
// Neighbor enumeration order is lexicographic by node id and never changes
// for the lifetime of the graph, which keeps path tie-breaking reproducible.
type Graph struct {
	order []string
	adj   map[string][]Halfedge
}

// ErrUnknownNode is returned when a queried node is not part of the graph.
var ErrUnknownNode = errors.New("graph: unknown node")

// New validates an adjacency description and builds a Graph from it.
// It fails fast on non-positive weights, self-loops, neighbors that are not
// themselves nodes, and asymmetric edges, so queries never have to deal
// with a malformed topology.
func New(desc Adjacency) (*Graph, error) {
	if len(desc) == 0 {
		return nil, errors.New("graph: topology is empty")
	}

	order := make([]string, 0, len(desc))
	for id := range desc {
		if id == "" {
			return nil, errors.New("graph: node id is empty")
		}
		order = append(order, id)
	}
	sort.Strings(order)

	adj := make(map[string][]Halfedge, len(desc))
	for _, id := range order {
		neighbors := desc[id]
		ids := make([]string, 0, len(neighbors))
		for nb := range neighbors {
			ids = append(ids, nb)
		}
		sort.Strings(ids)

		list := make([]Halfedge, 0, len(ids))
		for _, nb := range ids {
			w := neighbors[nb]
			if nb == id {
				return nil, fmt.Errorf("graph: node %q has a self-loop", id)
			}
			if w <= 0 {
				return nil, fmt.Errorf("graph: edge %s-%s has non-positive weight %v", id, nb, w)
			}
			back, ok := desc[nb]
			if !ok {
				return nil, fmt.Errorf("graph: node %q references unknown neighbor %q", id, nb)
			}
			if bw, ok := back[id]; !ok || bw != w {
				return nil, fmt.Errorf("graph: edge %s-%s is asymmetric", id, nb)
			}
			list = append(list, Halfedge{To: nb, Weight: w})
		}
		adj[id] = list
	}

	return &Graph{order: order, adj: adj}, nil
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Nodes returns all node ids in enumeration order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.order...)
}

// Neighbors returns the halfedges leaving id in enumeration order.
func (g *Graph) Neighbors(id string) ([]Halfedge, error) {
	list, ok := g.adj[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	return list, nil
}

// WithoutEdge returns a copy of the graph with the undirected edge u-v
// removed from both adjacency lists. If the edge does not exist the copy is
// equivalent to the original. The receiver is never modified.
func (g *Graph) WithoutEdge(u, v string) *Graph {
	adj := make(map[string][]Halfedge, len(g.adj))
	for id, list := range g.adj {
		if id != u && id != v {
			adj[id] = list
			continue
		}
		skip := v
		if id == v {
			skip = u
		}
		filtered := make([]Halfedge, 0, len(list))
		for _, he := range list {
			if he.To == skip {
				continue
			}
			filtered = append(filtered, he)
		}
		adj[id] = filtered
	}
	return &Graph{order: g.order, adj: adj}
}

// Describe returns the graph as an adjacency description. The result is a
// fresh copy safe for the caller to serialize or mutate.
func (g *Graph) Describe() Adjacency {
	desc := make(Adjacency, len(g.adj))
	for id, list := range g.adj {
		neighbors := make(map[string]float64, len(list))
		for _, he := range list {
			neighbors[he.To] = he.Weight
		}
		desc[id] = neighbors
	}
	return desc
}
