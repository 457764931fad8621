package stationgraph

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Sentinel errors for graph construction and queries.
var (
	// ErrEmptyStationName indicates an empty vertex name.
	ErrEmptyStationName = errors.New("stationgraph: station name is empty")

	// ErrStationNotFound indicates a query referenced an unknown station.
	ErrStationNotFound = errors.New("stationgraph: station not found")

	// ErrBadWeight indicates a negative or non-finite edge weight.
	ErrBadWeight = errors.New("stationgraph: edge weight must be finite and non-negative")

	// ErrSelfLoop indicates an edge from a station to itself.
	ErrSelfLoop = errors.New("stationgraph: self-loops not allowed")
)

// Edge is an undirected weighted connection between two stations. From/To
// preserve the shot's recorded direction; analysis treats them as
// interchangeable endpoints. ID is the insertion index and is unique
// within its graph.
type Edge struct {
	ID     int
	From   string
	To     string
	Weight float64
}

// Other returns the endpoint of e opposite to name. For a vertex not on
// the edge it returns To, matching the behavior of treating From as the
// local endpoint.
func (e *Edge) Other(name string) string {
	if e.To == name {
		return e.From
	}

	return e.To
}

// Graph is an undirected weighted multigraph over station names.
type Graph struct {
	vertices map[string]struct{}
	incident map[string][]*Edge
	edges    []*Edge
}

// New creates an empty Graph.
// Complexity: O(1)
func New() *Graph {
	return &Graph{
		vertices: make(map[string]struct{}),
		incident: make(map[string][]*Edge),
	}
}

// AddStation inserts a vertex. Adding an existing vertex is a no-op.
// Returns ErrEmptyStationName for the empty string.
// Complexity: O(1)
func (g *Graph) AddStation(name string) error {
	if name == "" {
		return ErrEmptyStationName
	}
	g.vertices[name] = struct{}{}

	return nil
}

// AddLeg inserts an undirected edge between from and to with the given
// weight, creating missing vertices, and returns the new edge's ID.
// Parallel edges are allowed; self-loops and bad weights are not.
// Complexity: O(1)
func (g *Graph) AddLeg(from, to string, weight float64) (int, error) {
	if from == "" || to == "" {
		return 0, ErrEmptyStationName
	}
	if from == to {
		return 0, fmt.Errorf("%w: %q", ErrSelfLoop, from)
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, fmt.Errorf("%w: %s→%s weight=%v", ErrBadWeight, from, to, weight)
	}

	g.vertices[from] = struct{}{}
	g.vertices[to] = struct{}{}

	e := &Edge{ID: len(g.edges), From: from, To: to, Weight: weight}
	g.edges = append(g.edges, e)
	g.incident[from] = append(g.incident[from], e)
	g.incident[to] = append(g.incident[to], e)

	return e.ID, nil
}

// HasStation reports whether name is a vertex.
// Complexity: O(1)
func (g *Graph) HasStation(name string) bool {
	_, ok := g.vertices[name]

	return ok
}

// Stations returns all vertex names in sorted order.
// Complexity: O(V log V)
func (g *Graph) Stations() []string {
	names := make([]string, 0, len(g.vertices))
	for name := range g.vertices {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Edges returns all edges in insertion (ID) order. The slice is a copy;
// the edges are shared.
// Complexity: O(E)
func (g *Graph) Edges() []*Edge {
	return append([]*Edge(nil), g.edges...)
}

// Incident returns the edges touching name in insertion order, or
// ErrStationNotFound. The slice is a copy; the edges are shared.
// Complexity: O(deg)
func (g *Graph) Incident(name string) ([]*Edge, error) {
	if !g.HasStation(name) {
		return nil, fmt.Errorf("%w: %q", ErrStationNotFound, name)
	}

	return append([]*Edge(nil), g.incident[name]...), nil
}

// StationCount returns the number of vertices.
func (g *Graph) StationCount() int { return len(g.vertices) }

// LegCount returns the number of edges.
func (g *Graph) LegCount() int { return len(g.edges) }
