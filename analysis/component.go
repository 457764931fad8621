package analysis

import (
	"fmt"

	"github.com/speleotools/caveline/stationgraph"
)

// BoundedComponent returns the sub-network reachable from start without
// traversing beyond any station named in terminations. Terminations that
// are reached appear in the result (in Stations and Boundary) but their
// far sides do not. An edge is included when both endpoints were reached
// and at least one of them is not a termination, so a leg running directly
// between two boundary stations stays outside.
//
// A start that is itself a termination yields the one-station component.
// Unknown start or termination names are ErrStationNotFound.
//
// Complexity: O(V + E)
func BoundedComponent(g *stationgraph.Graph, start string, terminations []string) (Component, error) {
	if g == nil {
		return Component{}, ErrNilGraph
	}
	if !g.HasStation(start) {
		return Component{}, fmt.Errorf("%w: start %q", ErrStationNotFound, start)
	}

	boundary := make(map[string]struct{}, len(terminations))
	for _, name := range terminations {
		if !g.HasStation(name) {
			return Component{}, fmt.Errorf("%w: termination %q", ErrStationNotFound, name)
		}
		boundary[name] = struct{}{}
	}

	// 1) Breadth-first expansion, stopping at every boundary station.
	comp := Component{Start: start}
	visited := map[string]struct{}{start: {}}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		comp.Stations = append(comp.Stations, cur)

		if _, stop := boundary[cur]; stop {
			comp.Boundary = append(comp.Boundary, cur)
			continue
		}

		incident, err := g.Incident(cur)
		if err != nil {
			return Component{}, err
		}
		for _, e := range incident {
			next := e.Other(cur)
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	// 2) Induced edges: both endpoints reached, not a boundary-to-boundary
	//    leg.
	for _, e := range g.Edges() {
		if _, ok := visited[e.From]; !ok {
			continue
		}
		if _, ok := visited[e.To]; !ok {
			continue
		}
		_, fromStop := boundary[e.From]
		_, toStop := boundary[e.To]
		if fromStop && toStop {
			continue
		}
		comp.EdgeIDs = append(comp.EdgeIDs, e.ID)
		comp.Length += e.Weight
	}

	return comp, nil
}
