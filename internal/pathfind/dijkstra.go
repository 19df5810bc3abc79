// Package pathfind computes shortest and second-shortest routes on the
// weighted undirected graphs built by the graph package. Both operations are
// pure functions of their inputs: all state is allocated per call, so
// concurrent queries over the same graph need no coordination.
package pathfind

import (
	"container/heap"
	"fmt"

	"github.com/meghna-v/pathways/internal/graph"
)

// CostNotFound is the in-band cost of the not-found sentinel.
const CostNotFound = -1

// PathResult is a route and its total cost. The zero-length path with cost
// -1 is the sentinel for "no such route exists"; it is a normal outcome,
// not an error.
type PathResult struct {
	Path []string `json:"path"`
	Cost float64  `json:"cost"`
}

// NotFound returns the sentinel result.
func NotFound() PathResult {
	return PathResult{Path: []string{}, Cost: CostNotFound}
}

// Found reports whether the result describes an actual route.
func (r PathResult) Found() bool {
	return r.Cost >= 0
}

// Shortest runs Dijkstra's algorithm between start and end and returns the
// minimum-cost simple path. start == end yields the single-node path with
// cost 0; a disconnected pair yields the not-found sentinel. Among equal-cost
// routes the one discovered first under the graph's stable neighbor order
// wins, so repeated calls return identical results.
func Shortest(g *graph.Graph, start, end string) (PathResult, error) {
	if !g.HasNode(start) {
		return NotFound(), fmt.Errorf("%w: %q", graph.ErrUnknownNode, start)
	}
	if !g.HasNode(end) {
		return NotFound(), fmt.Errorf("%w: %q", graph.ErrUnknownNode, end)
	}

	dist := map[string]float64{start: 0}
	prev := map[string]string{}
	visited := map[string]bool{}

	frontier := &frontierHeap{}
	heap.Init(frontier)
	frontier.push(start, 0)

	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(*frontierItem)
		if visited[item.node] {
			continue
		}
		visited[item.node] = true

		if item.node == end {
			break
		}

		neighbors, err := g.Neighbors(item.node)
		if err != nil {
			return NotFound(), err
		}
		for _, he := range neighbors {
			if visited[he.To] {
				continue
			}
			candidate := item.dist + he.Weight
			if best, seen := dist[he.To]; seen && candidate >= best {
				continue
			}
			dist[he.To] = candidate
			prev[he.To] = item.node
			frontier.push(he.To, candidate)
		}
	}

	if !visited[end] {
		return NotFound(), nil
	}

	path := []string{end}
	for node := end; node != start; {
		node = prev[node]
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return PathResult{Path: path, Cost: dist[end]}, nil
}

// frontierItem is a tentative (node, distance) entry in the priority
// frontier. seq preserves push order so that equal distances pop FIFO,
// keeping the search deterministic.
type frontierItem struct {
	node string
	dist float64
	seq  int
}

// frontierHeap is a min-heap over frontierItems using the lazy decrease-key
// pattern: a relaxation pushes a fresh entry and stale ones are skipped via
// the visited set when popped.
type frontierHeap struct {
	items []*frontierItem
	seq   int
}

func (h *frontierHeap) push(node string, dist float64) {
	heap.Push(h, &frontierItem{node: node, dist: dist, seq: h.seq})
	h.seq++
}

func (h *frontierHeap) Len() int { return len(h.items) }

func (h *frontierHeap) Less(i, j int) bool {
	if h.items[i].dist != h.items[j].dist {
		return h.items[i].dist < h.items[j].dist
	}
	return h.items[i].seq < h.items[j].seq
}

func (h *frontierHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *frontierHeap) Push(x any) { h.items = append(h.items, x.(*frontierItem)) }

func (h *frontierHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
