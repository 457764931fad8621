package analysis

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/speleotools/caveline/stationgraph"
)

// Vertex colors for the depth-first walk.
const (
	white = iota // untouched
	gray         // on the current path
	black        // finished
)

// cycleWalker carries the DFS state while the spanning forest is built.
// path holds the gray stations in order; pathW[i] is the weight of the
// tree edge entering path[i] (pathW[0] is unused).
type cycleWalker struct {
	g      *stationgraph.Graph
	color  map[string]int
	onPath map[string]int
	path   []string
	pathW  []float64
	cycles []Cycle
}

// FindCycles returns the fundamental cycles of g, one per non-tree edge of
// a depth-first spanning forest. Each cycle's Path is closed (first ==
// last) with no other repeated station, and its Length is the sum of the
// traversed edge weights. Parallel legs between the same two stations
// close two-station cycles. The result is sorted by path signature, so a
// given graph always yields the same list (IDs aside).
//
// Complexity: O(V + E + C·L) for C cycles of average length L.
func FindCycles(g *stationgraph.Graph) ([]Cycle, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	w := &cycleWalker{
		g:      g,
		color:  make(map[string]int, g.StationCount()),
		onPath: make(map[string]int, g.StationCount()),
	}

	// 1) Walk every component; roots in sorted order keep runs comparable.
	for _, root := range g.Stations() {
		if w.color[root] == white {
			w.visit(root, -1, 0)
		}
	}

	// 2) Canonical output order.
	sort.Slice(w.cycles, func(i, j int) bool {
		return strings.Join(w.cycles[i].Path, "/") < strings.Join(w.cycles[j].Path, "/")
	})

	return w.cycles, nil
}

// visit explores u, having arrived over edge parentEdge with weight viaW.
// Every incident edge other than the arrival edge either extends the tree
// or closes a cycle against a gray ancestor.
func (w *cycleWalker) visit(u string, parentEdge int, viaW float64) {
	w.color[u] = gray
	w.onPath[u] = len(w.path)
	w.path = append(w.path, u)
	w.pathW = append(w.pathW, viaW)

	incident, _ := w.g.Incident(u)
	for _, e := range incident {
		if e.ID == parentEdge {
			continue
		}
		v := e.Other(u)
		switch w.color[v] {
		case white:
			w.visit(v, e.ID, e.Weight)
		case gray:
			// Back edge to an ancestor: the path slice from v down to u
			// plus this edge is a fundamental cycle. A parallel leg hits
			// this case with v == parent, yielding a two-station cycle.
			w.record(w.onPath[v], e.Weight, v)
		}
		// black: the deeper endpoint already recorded this edge.
	}

	w.path = w.path[:len(w.path)-1]
	w.pathW = w.pathW[:len(w.pathW)-1]
	delete(w.onPath, u)
	w.color[u] = black
}

// record captures the cycle starting at path index from, closed back to
// station v by an edge of weight closeW.
func (w *cycleWalker) record(from int, closeW float64, v string) {
	cyclePath := make([]string, 0, len(w.path)-from+1)
	cyclePath = append(cyclePath, w.path[from:]...)
	cyclePath = append(cyclePath, v)

	weights := make([]float64, 0, len(cyclePath)-1)
	weights = append(weights, w.pathW[from+1:]...)
	weights = append(weights, closeW)

	w.cycles = append(w.cycles, Cycle{
		ID:     uuid.NewString(),
		Path:   cyclePath,
		Length: floats.Sum(weights),
	})
}
