package cave

import (
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/speleotools/caveline/geodesy"
	"github.com/speleotools/caveline/geom"
	"github.com/speleotools/caveline/survey"
)

// Recalculate re-derives the cave's merged station map from its
// authoritative shot lists. The whole computation is synchronous and runs
// to completion; it rebuilds everything from scratch, so calling it after
// any edit yields a consistent model.
//
// Returns the merged map, the accumulated diagnostics, and an error only
// for structurally corrupt input (nil cave, zero surveys, duplicate
// survey names, cyclic aliases, unusable fix point).
//
// Complexity: O(total shots) for merging plus the per-survey resolver cost.
func Recalculate(cv *Cave, opts ...Option) (map[string]*survey.Station, Diagnostics, error) {
	diag := Diagnostics{
		InvalidShots: make(map[string][]int),
		OrphanShots:  make(map[string][]int),
	}

	// 1) Structural validation; these abort the call.
	if cv == nil {
		return nil, diag, ErrNilCave
	}
	if len(cv.Surveys) == 0 {
		return nil, diag, fmt.Errorf("%w: cave %q", ErrNoSurveys, cv.Name)
	}
	if err := cv.Aliases.Validate(); err != nil {
		return nil, diag, fmt.Errorf("cave %q: %w", cv.Name, err)
	}
	seen := make(map[string]struct{}, len(cv.Surveys))
	for _, sv := range cv.Surveys {
		if sv == nil {
			return nil, diag, fmt.Errorf("%w: cave %q", ErrNilSurveyEntry, cv.Name)
		}
		if _, dup := seen[sv.Name]; dup {
			return nil, diag, fmt.Errorf("%w: %q in cave %q", ErrDuplicateSurvey, sv.Name, cv.Name)
		}
		seen[sv.Name] = struct{}{}
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger.With(slog.String("cave", cv.Name))

	// 2) Geo-reference context: convergence at the fix point and the
	//    WGS84 position used for declination lookups.
	convergence, fixLatLon, err := georefContext(cv)
	if err != nil {
		return nil, diag, err
	}

	// 3) Resolve surveys in definition order, chaining anchors.
	merged := make(map[string]*survey.Station)
	for i, sv := range cv.Surveys {
		sv.Isolated = false
		sv.Meta.Convergence = convergence
		fillDeclination(sv, fixLatLon, o, log)

		startName := sv.Start
		if startName != "" {
			startName, err = cv.Aliases.Canonical(startName)
			if err != nil {
				return nil, diag, fmt.Errorf("cave %q survey %q: %w", cv.Name, sv.Name, err)
			}
		}

		startPos := r3.Vec{}
		if i > 0 {
			anchor, ok := merged[startName]
			if startName != "" && ok {
				startPos = anchor.Position
			} else {
				// Fallback anchoring keeps the survey renderable; the flag
				// and diagnostic mark it for user attention.
				sv.Isolated = true
				diag.IsolatedSurveys = append(diag.IsolatedSurveys, sv.Name)
				log.Warn("survey start not found in earlier surveys; anchoring at origin",
					slog.String("survey", sv.Name),
					slog.String("start", sv.Start))
			}
		}

		_, sdiag, err := survey.Resolve(sv, startPos, cv.Aliases)
		if err != nil {
			return nil, diag, fmt.Errorf("cave %q: %w", cv.Name, err)
		}
		if len(sdiag.InvalidShotIDs) > 0 {
			diag.InvalidShots[sv.Name] = sdiag.InvalidShotIDs
		}
		if len(sdiag.OrphanShotIDs) > 0 {
			diag.OrphanShots[sv.Name] = sdiag.OrphanShotIDs
		}

		mergeStations(merged, sv, startName, &diag, log)
	}

	// 4) Geo-coordinates for every merged station.
	if cv.System != nil && len(cv.FixPoints) > 0 {
		applyGeoreference(cv, merged, log)
	}

	cv.Stations = merged
	log.Debug("recalculation complete",
		slog.Int("surveys", len(cv.Surveys)),
		slog.Int("stations", len(merged)))

	return merged, diag, nil
}

// georefContext derives the meridian convergence and WGS84 position of the
// cave's anchoring fix point. Without a system or fix points both are zero
// values and no correction is applied.
func georefContext(cv *Cave) (float64, *geodesy.LatLon, error) {
	if cv.System == nil || len(cv.FixPoints) == 0 {
		return 0, nil, nil
	}

	fix := cv.FixPoints[0]
	conv, err := geodesy.Convergence(cv.System, fix.Coordinate)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: cave %q station %q: %v", ErrFixPoint, cv.Name, fix.StationName, err)
	}
	ll, err := cv.System.ToWGS84(fix.Coordinate)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: cave %q station %q: %v", ErrFixPoint, cv.Name, fix.StationName, err)
	}

	return conv, &ll, nil
}

// fillDeclination looks up the magnetic declination for a survey that has
// a date but no recorded value. Lookup failures degrade to the recorded
// (zero) declination with a warning; they never abort resolution.
func fillDeclination(sv *survey.Survey, at *geodesy.LatLon, o Options, log *slog.Logger) {
	if o.Declination == nil || at == nil || sv.Meta.Declination != 0 || sv.Meta.Date.IsZero() {
		return
	}

	d, err := o.Declination.Declination(sv.Meta.Date, *at)
	if err != nil {
		log.Warn("declination lookup failed; using 0",
			slog.String("survey", sv.Name),
			slog.Any("error", err))

		return
	}
	sv.Meta.Declination = d
}

// mergeStations folds one resolved survey into the cave-wide map.
// The chaining anchor is expected to collide; every other collision is an
// ambiguity diagnostic, and the earlier resolution keeps the position.
func mergeStations(merged map[string]*survey.Station, sv *survey.Survey, startName string, diag *Diagnostics, log *slog.Logger) {
	names := make([]string, 0, len(sv.Stations))
	for name := range sv.Stations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		existing, collides := merged[name]
		if !collides {
			merged[name] = sv.Stations[name]
			continue
		}
		if name == startName {
			continue // shared anchor between chained surveys
		}
		diag.AmbiguousStations = append(diag.AmbiguousStations, Ambiguity{
			Station:      name,
			FirstSurvey:  existing.Survey,
			SecondSurvey: sv.Name,
		})
		log.Warn("ambiguous station name across surveys",
			slog.String("station", name),
			slog.String("first", existing.Survey),
			slog.String("second", sv.Name))
	}
}

// applyGeoreference computes projected and WGS84 coordinates for every
// merged station relative to the cave's first fix point, and reports the
// misfit of any additional fix points.
func applyGeoreference(cv *Cave, merged map[string]*survey.Station, log *slog.Logger) {
	fix := cv.FixPoints[0]
	fixName, err := cv.Aliases.Canonical(fix.StationName)
	if err != nil {
		fixName = fix.StationName // alias cycles were rejected earlier
	}
	anchor, ok := merged[fixName]
	if !ok {
		log.Warn("fix point station not resolved; skipping geo-referencing",
			slog.String("station", fix.StationName))

		return
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := merged[name]
		p := geodesy.ToProjected(st.Position, anchor.Position, fix.Coordinate)
		st.Projected = &p
		ll, err := cv.System.ToWGS84(p)
		if err != nil {
			st.WGS84 = nil
			log.Warn("station outside projection domain",
				slog.String("station", name),
				slog.Any("error", err))
			continue
		}
		st.WGS84 = &ll
	}

	// Additional fix points double-check the anchoring.
	for _, extra := range cv.FixPoints[1:] {
		name, err := cv.Aliases.Canonical(extra.StationName)
		if err != nil {
			name = extra.StationName
		}
		st, ok := merged[name]
		if !ok || st.Projected == nil {
			continue
		}
		misfitE := st.Projected.Easting - extra.Coordinate.Easting
		misfitN := st.Projected.Northing - extra.Coordinate.Northing
		log.Info("fix point misfit",
			slog.String("station", extra.StationName),
			slog.Float64("east_m", misfitE),
			slog.Float64("north_m", misfitN))
	}
}

// DepthShades maps every station to a gradient color by its normalized
// depth: the shallowest station samples the gradient at 0, the deepest at
// 1. Visualization metadata only.
// Complexity: O(n)
func DepthShades(stations map[string]*survey.Station, g geom.Gradient) map[string]geom.RGB {
	shades := make(map[string]geom.RGB, len(stations))
	if len(stations) == 0 {
		return shades
	}

	first := true
	var minZ, maxZ float64
	for _, st := range stations {
		if first {
			minZ, maxZ = st.Position.Z, st.Position.Z
			first = false
			continue
		}
		if st.Position.Z < minZ {
			minZ = st.Position.Z
		}
		if st.Position.Z > maxZ {
			maxZ = st.Position.Z
		}
	}

	span := maxZ - minZ
	for name, st := range stations {
		t := 0.0
		if span > 0 {
			// Deeper (more negative Z) samples closer to 1.
			t = (maxZ - st.Position.Z) / span
		}
		shades[name] = g.At(t)
	}

	return shades
}
