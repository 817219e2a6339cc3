package behavior

import (
	"sync"

	"github.com/google/uuid"
)

// Graph records which behaviors were seen producing uses of which others.
// Edges are only ever added: knowledge gathered in one resolution attempt is
// kept for every later attempt and resolution that shares the graph.
type Graph struct {
	mu    sync.RWMutex
	nodes map[uuid.UUID]Type
	// sub keeps direct sub-behaviors in discovery order; seen mirrors it
	// for membership checks.
	sub   map[uuid.UUID][]uuid.UUID
	seen  map[uuid.UUID]map[uuid.UUID]struct{}
	edges int
}

// NewGraph creates an empty sub-behavior graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[uuid.UUID]Type),
		sub:   make(map[uuid.UUID][]uuid.UUID),
		seen:  make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

// Add records child as a direct sub-behavior of parent. It reports whether
// the edge was new.
func (g *Graph) Add(parent, child Type) bool {
	if g == nil || parent == nil || child == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	from, to := parent.ID(), child.ID()
	g.nodes[from] = parent
	g.nodes[to] = child
	set, ok := g.seen[from]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		g.seen[from] = set
	}
	if _, exists := set[to]; exists {
		return false
	}
	set[to] = struct{}{}
	g.sub[from] = append(g.sub[from], to)
	g.edges++
	return true
}

// HasSubBehavior reports whether child is reachable from parent through one
// or more recorded edges.
func (g *Graph) HasSubBehavior(parent, child Type) bool {
	if g == nil || parent == nil || child == nil {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reaches(parent.ID(), child.ID())
}

func (g *Graph) reaches(from, target uuid.UUID) bool {
	if len(g.sub[from]) == 0 {
		return false
	}
	stack := make([]uuid.UUID, 0, 16)
	stack = append(stack, g.sub[from]...)
	visited := make(map[uuid.UUID]bool, 16)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == target {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range g.sub[current] {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return false
}

// SubBehaviors returns the direct sub-behaviors of parent in the order they
// were discovered.
func (g *Graph) SubBehaviors(parent Type) []Type {
	if g == nil || parent == nil {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := g.sub[parent.ID()]
	if len(ids) == 0 {
		return nil
	}
	out := make([]Type, len(ids))
	for i, id := range ids {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns the number of distinct edges recorded so far.
func (g *Graph) Edges() int {
	if g == nil {
		return 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}
