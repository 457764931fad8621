// Package geom_test validates the bearing convention and interpolation
// helpers: all four compass quadrants, the clino decomposition identity,
// azimuth wrapping, and gradient sampling.
package geom_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/speleotools/caveline/geom"
)

const eps = 1e-9

// TestDisplacement_Quadrants pins the compass convention: 0°=north=+Y,
// 90°=east=+X, 180°=south=−Y, 270°=west=−X.
func TestDisplacement_Quadrants(t *testing.T) {
	cases := []struct {
		name    string
		azimuth float64
		want    r3.Vec
	}{
		{"north", 0, r3.Vec{X: 0, Y: 10, Z: 0}},
		{"east", 90, r3.Vec{X: 10, Y: 0, Z: 0}},
		{"south", 180, r3.Vec{X: 0, Y: -10, Z: 0}},
		{"west", 270, r3.Vec{X: -10, Y: 0, Z: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := geom.Displacement(10, tc.azimuth, 0)
			if math.Abs(got.X-tc.want.X) > eps || math.Abs(got.Y-tc.want.Y) > eps || math.Abs(got.Z-tc.want.Z) > eps {
				t.Fatalf("Displacement(10, %v, 0) = %+v; want %+v", tc.azimuth, got, tc.want)
			}
		})
	}
}

// TestDisplacement_ClinoIdentity checks dz = L·sin(C) and
// horizontal = L·cos(C) across a spread of angles.
func TestDisplacement_ClinoIdentity(t *testing.T) {
	const length = 7.25
	for _, az := range []float64{0, 33, 90, 123, 210, 359} {
		for _, clino := range []float64{-90, -45, -10, 0, 10, 45, 90} {
			d := geom.Displacement(length, az, clino)
			cl := geom.DegToRad(clino)
			if got, want := d.Z, length*math.Sin(cl); math.Abs(got-want) > eps {
				t.Fatalf("az=%v clino=%v: dz = %v; want %v", az, clino, got, want)
			}
			horizontal := math.Hypot(d.X, d.Y)
			if want := math.Abs(length * math.Cos(cl)); math.Abs(horizontal-want) > eps {
				t.Fatalf("az=%v clino=%v: horizontal = %v; want %v", az, clino, horizontal, want)
			}
		}
	}
}

func TestNormalizeAzimuth(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-720, 0},
		{359.5, 359.5},
	}
	for _, tc := range cases {
		if got := geom.NormalizeAzimuth(tc.in); math.Abs(got-tc.want) > eps {
			t.Errorf("NormalizeAzimuth(%v) = %v; want %v", tc.in, got, tc.want)
		}
	}
	if got := geom.NormalizeAzimuth(math.NaN()); !math.IsNaN(got) {
		t.Errorf("NormalizeAzimuth(NaN) = %v; want NaN passthrough", got)
	}
}

func TestDistance(t *testing.T) {
	a := r3.Vec{X: 1, Y: 2, Z: 3}
	b := r3.Vec{X: 4, Y: 6, Z: 3}
	if got := geom.Distance(a, b); math.Abs(got-5) > eps {
		t.Fatalf("Distance = %v; want 5", got)
	}
}

func TestLerpVec_ClampsParameter(t *testing.T) {
	a := r3.Vec{}
	b := r3.Vec{X: 2, Y: 4, Z: 8}
	mid := geom.LerpVec(a, b, 0.5)
	if math.Abs(mid.X-1) > eps || math.Abs(mid.Y-2) > eps || math.Abs(mid.Z-4) > eps {
		t.Fatalf("LerpVec midpoint = %+v", mid)
	}
	if got := geom.LerpVec(a, b, 2); got != b {
		t.Fatalf("LerpVec(t=2) = %+v; want clamp to b", got)
	}
	if got := geom.LerpVec(a, b, -1); got != a {
		t.Fatalf("LerpVec(t=-1) = %+v; want clamp to a", got)
	}
}

func TestGradient_At(t *testing.T) {
	// Depth shading: shallow = warm, deep = cold. Stops given unsorted on
	// purpose; NewGradient must order them.
	g := geom.NewGradient(
		geom.GradientStop{T: 1, C: geom.RGB{B: 1}},
		geom.GradientStop{T: 0, C: geom.RGB{R: 1}},
	)

	if got := g.At(-0.5); got != (geom.RGB{R: 1}) {
		t.Errorf("At(-0.5) = %+v; want first stop", got)
	}
	if got := g.At(1.5); got != (geom.RGB{B: 1}) {
		t.Errorf("At(1.5) = %+v; want last stop", got)
	}
	mid := g.At(0.5)
	if math.Abs(mid.R-0.5) > eps || math.Abs(mid.B-0.5) > eps || mid.G != 0 {
		t.Errorf("At(0.5) = %+v; want half red half blue", mid)
	}

	var empty geom.Gradient
	if got := empty.At(0.3); got != (geom.RGB{}) {
		t.Errorf("empty gradient At = %+v; want zero", got)
	}
}
