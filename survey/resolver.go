package survey

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/speleotools/caveline/geom"
)

// resolvedShot is a validated shot with alias-canonical endpoint names.
type resolvedShot struct {
	index int
	from  string
	to    string
	shot  Shot
}

// Resolve traverses the survey's shot list and assigns an absolute 3D
// position to every station reachable from the start, which is placed at
// startPos. Aliases are substituted before traversal, so a shot naming an
// alias attaches to the canonical station instead of creating a second one.
//
// Azimuths are corrected by the survey's declination and meridian
// convergence (grid bearing = compass + declination − convergence) before
// the polar→Cartesian conversion.
//
// Invalid shots are excluded and reported; shots left unreachable after
// traversal stops making progress are reported as orphaned. Neither
// condition is an error. The only fatal conditions are a nil survey and a
// cyclic alias chain.
//
// Side effects: sv.Stations, sv.InvalidShotIDs and sv.OrphanShotIDs are
// rebuilt from scratch. Nothing outside sv is mutated.
//
// Complexity: O(S²) worst case over S shots (each pass resolves at least
// one shot); O(S) for typical in-order shot lists.
func Resolve(sv *Survey, startPos r3.Vec, aliases Aliases) (map[string]*Station, Diagnostics, error) {
	if sv == nil {
		return nil, Diagnostics{}, ErrNilSurvey
	}

	sv.Stations = make(map[string]*Station, len(sv.Shots)+1)
	sv.InvalidShotIDs = nil
	sv.OrphanShotIDs = nil

	// 1) Validate and canonicalize. A shot collapsing onto itself after
	//    alias substitution carries no geometry and is classified invalid.
	valid := make([]resolvedShot, 0, len(sv.Shots))
	for i, shot := range sv.Shots {
		if shot.Validate() != nil {
			sv.InvalidShotIDs = append(sv.InvalidShotIDs, i)
			continue
		}
		from, err := aliases.Canonical(shot.From)
		if err != nil {
			return nil, Diagnostics{}, fmt.Errorf("survey %q shot %d: %w", sv.Name, i, err)
		}
		to, err := aliases.Canonical(shot.To)
		if err != nil {
			return nil, Diagnostics{}, fmt.Errorf("survey %q shot %d: %w", sv.Name, i, err)
		}
		if from == to {
			sv.InvalidShotIDs = append(sv.InvalidShotIDs, i)
			continue
		}
		valid = append(valid, resolvedShot{index: i, from: from, to: to, shot: shot})
	}

	// 2) Seed the root station at startPos.
	root := sv.Start
	if root != "" {
		canon, err := aliases.Canonical(root)
		if err != nil {
			return nil, Diagnostics{}, fmt.Errorf("survey %q start: %w", sv.Name, err)
		}
		root = canon
	} else if len(valid) > 0 {
		root = valid[0].from
	}
	if root == "" {
		// No start and no valid shots: nothing to resolve.
		return sv.Stations, sv.diagnostics(), nil
	}
	sv.Stations[root] = &Station{
		Name:     root,
		Position: startPos,
		Type:     StationCenter,
		Survey:   sv.Name,
	}

	// 3) Traverse with deferral. Each pass walks the remaining shots in
	//    order; a pass without progress means the rest are unreachable.
	correction := sv.Meta.Declination - sv.Meta.Convergence
	leaf := make(map[string]bool)
	processed := make([]bool, len(valid))
	remaining := len(valid)
	for remaining > 0 {
		progress := false
		for vi := range valid {
			if processed[vi] {
				continue
			}
			rs := &valid[vi]
			from, ok := sv.Stations[rs.from]
			if !ok || leaf[rs.from] {
				continue // deferred; leaf stations are never traversed further
			}
			processed[vi] = true
			remaining--
			progress = true

			if _, closed := sv.Stations[rs.to]; closed {
				// Both endpoints already positioned: loop-closing edge.
				// It will surface as a graph edge, never as a reposition.
				continue
			}

			disp := geom.Displacement(rs.shot.Length, rs.shot.Azimuth+correction, rs.shot.Clino)
			sv.Stations[rs.to] = &Station{
				Name:     rs.to,
				Position: r3.Add(from.Position, disp),
				Type:     stationTypeFor(rs.shot.Type),
				Survey:   sv.Name,
			}
			if rs.shot.Type == ShotSplay || rs.shot.Type == ShotAuxiliary {
				leaf[rs.to] = true
			}
		}
		if !progress {
			break
		}
	}

	// 4) Whatever is left could not be reached from the start.
	for vi, done := range processed {
		if !done {
			sv.OrphanShotIDs = append(sv.OrphanShotIDs, valid[vi].index)
		}
	}

	return sv.Stations, sv.diagnostics(), nil
}

// diagnostics snapshots the survey's diagnostic sets.
func (sv *Survey) diagnostics() Diagnostics {
	return Diagnostics{
		InvalidShotIDs: append([]int(nil), sv.InvalidShotIDs...),
		OrphanShotIDs:  append([]int(nil), sv.OrphanShotIDs...),
	}
}
