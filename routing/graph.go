package routing

import (
	"errors"
	"fmt"
	"sort"
)

var ErrNegativeWeight = errors.New("edge weight must be non-negative")

// Edge represents a directed road segment leaving a node
type Edge struct {
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// Graph represents a directed weighted road network keyed by node label.
// Once built at startup it is only read.
type Graph struct {
	Edges map[string][]Edge // Map of node labels to outgoing edges
}

func NewGraph() *Graph {
	return &Graph{
		Edges: make(map[string][]Edge),
	}
}

// DefaultRoadGraph returns the demo intersection network.
func DefaultRoadGraph() *Graph {
	g := NewGraph()
	for _, e := range []struct {
		from, to string
		weight   int
	}{
		{"A", "B", 2},
		{"A", "C", 5},
		{"B", "C", 1},
		{"B", "D", 4},
		{"C", "D", 1},
	} {
		g.mustAddEdge(e.from, e.to, e.weight)
	}
	return g
}

func (g *Graph) mustAddEdge(from, to string, weight int) {
	if err := g.AddEdge(from, to, weight); err != nil {
		panic(err)
	}
}

func (g *Graph) AddNode(id string) {
	if _, ok := g.Edges[id]; !ok {
		g.Edges[id] = []Edge{}
	}
}

// AddEdge inserts a directed edge. Both endpoints become nodes of the graph.
func (g *Graph) AddEdge(from, to string, weight int) error {
	if weight < 0 {
		return fmt.Errorf("%s->%s (%d): %w", from, to, weight, ErrNegativeWeight)
	}
	g.AddNode(from)
	g.AddNode(to)
	g.Edges[from] = append(g.Edges[from], Edge{To: to, Weight: weight})
	return nil
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.Edges[id]
	return ok
}

// Neighbors returns outgoing edges in insertion order. Unknown nodes have none.
func (g *Graph) Neighbors(id string) []Edge {
	return g.Edges[id]
}

// Nodes returns all node labels sorted.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.Edges))
	for id := range g.Edges {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

func (g *Graph) EdgeCount() int {
	count := 0
	for _, edges := range g.Edges {
		count += len(edges)
	}
	return count
}
