package stationgraph

import (
	"errors"
	"fmt"

	"github.com/speleotools/caveline/cave"
	"github.com/speleotools/caveline/geom"
)

// Sentinel errors for graph construction from a cave.
var (
	// ErrNilCave indicates a nil *cave.Cave.
	ErrNilCave = errors.New("stationgraph: cave is nil")

	// ErrNotRecalculated indicates the cave has no merged station map;
	// Recalculate must run before a graph can be built.
	ErrNotRecalculated = errors.New("stationgraph: cave has no merged stations; recalculate first")
)

// FromCave builds the analysis graph of a recalculated cave: every merged
// station becomes a vertex, every valid shot whose endpoints both resolved
// becomes an edge weighted by the Euclidean distance between the endpoint
// positions. Invalid and orphan shots contribute nothing.
//
// Complexity: O(V + total shots)
func FromCave(cv *cave.Cave) (*Graph, error) {
	if cv == nil {
		return nil, ErrNilCave
	}
	if cv.Stations == nil {
		return nil, fmt.Errorf("%w: cave %q", ErrNotRecalculated, cv.Name)
	}

	g := New()
	for name := range cv.Stations {
		if err := g.AddStation(name); err != nil {
			return nil, fmt.Errorf("stationgraph: cave %q: %w", cv.Name, err)
		}
	}

	for _, sv := range cv.Surveys {
		invalid := make(map[int]struct{}, len(sv.InvalidShotIDs))
		for _, id := range sv.InvalidShotIDs {
			invalid[id] = struct{}{}
		}

		for i, shot := range sv.Shots {
			if _, bad := invalid[i]; bad {
				continue
			}
			from, err := cv.Aliases.Canonical(shot.From)
			if err != nil {
				return nil, fmt.Errorf("stationgraph: cave %q survey %q: %w", cv.Name, sv.Name, err)
			}
			to, err := cv.Aliases.Canonical(shot.To)
			if err != nil {
				return nil, fmt.Errorf("stationgraph: cave %q survey %q: %w", cv.Name, sv.Name, err)
			}
			if from == to {
				continue
			}
			a, okA := cv.Stations[from]
			b, okB := cv.Stations[to]
			if !okA || !okB {
				continue // orphan shot: endpoints never resolved
			}
			if _, err := g.AddLeg(from, to, geom.Distance(a.Position, b.Position)); err != nil {
				return nil, fmt.Errorf("stationgraph: cave %q survey %q shot %d: %w", cv.Name, sv.Name, i, err)
			}
		}
	}

	return g, nil
}
