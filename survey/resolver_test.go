// Package survey_test covers the resolver contract: traversal geometry,
// deferral and orphan reporting, alias substitution, leaf handling,
// loop-closing shots, azimuth corrections, and determinism.
package survey_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/speleotools/caveline/survey"
)

const eps = 1e-9

func requireVec(t *testing.T, want, got r3.Vec, msg string) {
	t.Helper()
	require.InDelta(t, want.X, got.X, eps, "%s: X", msg)
	require.InDelta(t, want.Y, got.Y, eps, "%s: Y", msg)
	require.InDelta(t, want.Z, got.Z, eps, "%s: Z", msg)
}

// TestResolve_EastThenNorth is the canonical two-shot survey: 10m due east,
// then 5m due north, both horizontal.
func TestResolve_EastThenNorth(t *testing.T) {
	sv := &survey.Survey{
		Name:  "main",
		Start: "A",
		Shots: []survey.Shot{
			{From: "A", To: "B", Length: 10, Azimuth: 90, Clino: 0},
			{From: "B", To: "C", Length: 5, Azimuth: 0, Clino: 0},
		},
	}

	stations, diag, err := survey.Resolve(sv, r3.Vec{}, nil)
	require.NoError(t, err)
	require.Empty(t, diag.InvalidShotIDs)
	require.Empty(t, diag.OrphanShotIDs)
	require.Len(t, stations, 3)

	requireVec(t, r3.Vec{}, stations["A"].Position, "A")
	requireVec(t, r3.Vec{X: 10}, stations["B"].Position, "B")
	requireVec(t, r3.Vec{X: 10, Y: 5}, stations["C"].Position, "C")
	require.Equal(t, "main", stations["B"].Survey)
}

func TestResolve_Deterministic(t *testing.T) {
	sv := &survey.Survey{
		Name:  "m",
		Start: "A",
		Shots: []survey.Shot{
			{From: "A", To: "B", Length: 12.34, Azimuth: 123.4, Clino: -12.5},
			{From: "B", To: "C", Length: 3.21, Azimuth: 351.9, Clino: 48.75},
			{From: "C", To: "D", Length: 9.99, Azimuth: 77.7, Clino: 0.1},
		},
	}
	start := r3.Vec{X: 1.5, Y: -2.25, Z: 100}

	first, _, err := survey.Resolve(sv, start, nil)
	require.NoError(t, err)
	second, _, err := survey.Resolve(sv, start, nil)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for name, st := range first {
		// Bit-identical, not merely close.
		require.Equal(t, st.Position, second[name].Position, "station %s", name)
	}
}

// TestResolve_InvalidShotExcluded: a NaN length marks the shot invalid and
// the rest of the survey resolves unaffected.
func TestResolve_InvalidShotExcluded(t *testing.T) {
	sv := &survey.Survey{
		Name:  "m",
		Start: "A",
		Shots: []survey.Shot{
			{From: "A", To: "B", Length: 10, Azimuth: 90, Clino: 0},
			{From: "X", To: "Y", Length: math.NaN(), Azimuth: 10, Clino: 5},
			{From: "B", To: "C", Length: 5, Azimuth: 0, Clino: 0},
		},
	}

	stations, diag, err := survey.Resolve(sv, r3.Vec{}, nil)
	require.NoError(t, err)
	require.Equal(t, []int{1}, diag.InvalidShotIDs)
	require.Empty(t, diag.OrphanShotIDs)
	require.Len(t, stations, 3)
	requireVec(t, r3.Vec{X: 10, Y: 5}, stations["C"].Position, "C")
}

func TestResolve_OrphanShots(t *testing.T) {
	sv := &survey.Survey{
		Name:  "m",
		Start: "A",
		Shots: []survey.Shot{
			{From: "A", To: "B", Length: 10, Azimuth: 90, Clino: 0},
			// Disconnected sub-loop, unreachable from A.
			{From: "P", To: "Q", Length: 4, Azimuth: 0, Clino: 0},
			{From: "Q", To: "P", Length: 4, Azimuth: 180, Clino: 0},
		},
	}

	stations, diag, err := survey.Resolve(sv, r3.Vec{}, nil)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, diag.OrphanShotIDs)
	require.Len(t, stations, 2)
	require.NotContains(t, stations, "P")
	require.NotContains(t, stations, "Q")
}

// TestResolve_OutOfOrderShots: shots arriving before their from-station is
// resolved are deferred, not dropped.
func TestResolve_OutOfOrderShots(t *testing.T) {
	sv := &survey.Survey{
		Name:  "m",
		Start: "A",
		Shots: []survey.Shot{
			{From: "B", To: "C", Length: 5, Azimuth: 0, Clino: 0},
			{From: "A", To: "B", Length: 10, Azimuth: 90, Clino: 0},
		},
	}

	stations, diag, err := survey.Resolve(sv, r3.Vec{}, nil)
	require.NoError(t, err)
	require.Empty(t, diag.OrphanShotIDs)
	requireVec(t, r3.Vec{X: 10, Y: 5}, stations["C"].Position, "C")
}

func TestResolve_Aliases(t *testing.T) {
	aliases := survey.Aliases{"A'": "A", "old-B": "B"}
	sv := &survey.Survey{
		Name:  "m",
		Start: "A",
		Shots: []survey.Shot{
			{From: "A", To: "B", Length: 10, Azimuth: 90, Clino: 0},
			// References through aliases attach to the canonical stations.
			{From: "old-B", To: "C", Length: 5, Azimuth: 0, Clino: 0},
			{From: "C", To: "A'", Length: 11, Azimuth: 225, Clino: 0},
		},
	}

	stations, diag, err := survey.Resolve(sv, r3.Vec{}, aliases)
	require.NoError(t, err)
	require.Empty(t, diag.OrphanShotIDs)
	require.Len(t, stations, 3, "aliases must not create extra stations")
	require.NotContains(t, stations, "A'")
	require.NotContains(t, stations, "old-B")
	// The closing shot to A' is a loop-closing edge; A keeps its position.
	requireVec(t, r3.Vec{}, stations["A"].Position, "A")
}

func TestResolve_CyclicAliasFatal(t *testing.T) {
	aliases := survey.Aliases{"x": "y", "y": "x"}
	sv := &survey.Survey{
		Name:  "m",
		Start: "A",
		Shots: []survey.Shot{{From: "A", To: "x", Length: 1, Azimuth: 0, Clino: 0}},
	}

	_, _, err := survey.Resolve(sv, r3.Vec{}, aliases)
	require.ErrorIs(t, err, survey.ErrCyclicAlias)
}

// TestResolve_LoopClosingShotNeverRepositions: a duplicate shot between two
// resolved stations must not move either endpoint, whatever it measures.
func TestResolve_LoopClosingShotNeverRepositions(t *testing.T) {
	sv := &survey.Survey{
		Name:  "m",
		Start: "A",
		Shots: []survey.Shot{
			{From: "A", To: "B", Length: 10, Azimuth: 90, Clino: 0},
			// Re-measured leg disagreeing by 40cm; closure error, not a move.
			{From: "A", To: "B", Length: 10.4, Azimuth: 92, Clino: 1},
		},
	}

	stations, diag, err := survey.Resolve(sv, r3.Vec{}, nil)
	require.NoError(t, err)
	require.Empty(t, diag.OrphanShotIDs)
	requireVec(t, r3.Vec{X: 10}, stations["B"].Position, "B")
}

// TestResolve_SplayLeaf: splay destinations get positions but are never
// traversed further; shots hanging off them become orphans.
func TestResolve_SplayLeaf(t *testing.T) {
	sv := &survey.Survey{
		Name:  "m",
		Start: "A",
		Shots: []survey.Shot{
			{From: "A", To: "w1", Length: 2, Azimuth: 90, Clino: 0, Type: survey.ShotSplay},
			{From: "w1", To: "Z", Length: 3, Azimuth: 0, Clino: 0},
		},
	}

	stations, diag, err := survey.Resolve(sv, r3.Vec{}, nil)
	require.NoError(t, err)
	require.Equal(t, survey.StationSplay, stations["w1"].Type)
	require.Equal(t, []int{1}, diag.OrphanShotIDs)
	require.NotContains(t, stations, "Z")
}

// TestResolve_AzimuthCorrections: grid bearing = compass + declination −
// convergence.
func TestResolve_AzimuthCorrections(t *testing.T) {
	sv := &survey.Survey{
		Name:  "m",
		Start: "A",
		Meta:  survey.Metadata{Declination: 90, Convergence: 0},
		Shots: []survey.Shot{{From: "A", To: "B", Length: 10, Azimuth: 0, Clino: 0}},
	}
	stations, _, err := survey.Resolve(sv, r3.Vec{}, nil)
	require.NoError(t, err)
	requireVec(t, r3.Vec{X: 10}, stations["B"].Position, "declination rotates north shot to east")

	sv.Meta = survey.Metadata{Declination: 0, Convergence: 90}
	stations, _, err = survey.Resolve(sv, r3.Vec{}, nil)
	require.NoError(t, err)
	requireVec(t, r3.Vec{X: -10}, stations["B"].Position, "convergence subtracts")
}

func TestResolve_ImplicitRoot(t *testing.T) {
	sv := &survey.Survey{
		Name: "m",
		Shots: []survey.Shot{
			{From: "7", To: "8", Length: 4, Azimuth: 180, Clino: 0},
		},
	}
	stations, _, err := survey.Resolve(sv, r3.Vec{Z: 5}, nil)
	require.NoError(t, err)
	requireVec(t, r3.Vec{Z: 5}, stations["7"].Position, "first valid shot's from is the root")
}

func TestResolve_VerticalShot(t *testing.T) {
	sv := &survey.Survey{
		Name:  "m",
		Start: "A",
		Shots: []survey.Shot{{From: "A", To: "B", Length: 30, Azimuth: 123, Clino: -90}},
	}
	stations, _, err := survey.Resolve(sv, r3.Vec{}, nil)
	require.NoError(t, err)
	requireVec(t, r3.Vec{Z: -30}, stations["B"].Position, "pitch goes straight down")
}

func TestResolve_NilSurvey(t *testing.T) {
	_, _, err := survey.Resolve(nil, r3.Vec{}, nil)
	require.ErrorIs(t, err, survey.ErrNilSurvey)
}

func TestResolve_EmptySurvey(t *testing.T) {
	sv := &survey.Survey{Name: "empty"}
	stations, diag, err := survey.Resolve(sv, r3.Vec{}, nil)
	require.NoError(t, err)
	require.Empty(t, stations)
	require.Empty(t, diag.InvalidShotIDs)
	require.Empty(t, diag.OrphanShotIDs)
}

func TestShot_Validate(t *testing.T) {
	cases := []struct {
		name string
		shot survey.Shot
		ok   bool
	}{
		{"valid", survey.Shot{From: "A", To: "B", Length: 1, Azimuth: 0, Clino: 0}, true},
		{"zero-length", survey.Shot{From: "A", To: "B"}, true},
		{"nan-length", survey.Shot{From: "A", To: "B", Length: math.NaN()}, false},
		{"inf-azimuth", survey.Shot{From: "A", To: "B", Length: 1, Azimuth: math.Inf(1)}, false},
		{"nan-clino", survey.Shot{From: "A", To: "B", Length: 1, Clino: math.NaN()}, false},
		{"negative-length", survey.Shot{From: "A", To: "B", Length: -0.1}, false},
		{"clino-over", survey.Shot{From: "A", To: "B", Length: 1, Clino: 91}, false},
		{"empty-from", survey.Shot{To: "B", Length: 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.shot.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, survey.ErrInvalidShot)
			}
		})
	}
}

func TestAliases_Validate(t *testing.T) {
	require.NoError(t, survey.Aliases{"a": "b", "b": "c"}.Validate())
	require.ErrorIs(t, survey.Aliases{"a": "b", "b": "a"}.Validate(), survey.ErrCyclicAlias)
	require.ErrorIs(t, survey.Aliases{"a": "a"}.Validate(), survey.ErrCyclicAlias)
}
