package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DegToRad converts degrees to radians.
// Complexity: O(1)
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RadToDeg converts radians to degrees.
// Complexity: O(1)
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeAzimuth wraps an azimuth in degrees into the interval [0, 360).
// Non-finite input is returned unchanged so validation layers can reject it.
// Complexity: O(1)
func NormalizeAzimuth(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return deg
	}
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}

	return m
}

// Displacement converts a polar shot measurement into a Cartesian
// displacement vector.
//
// length is the measured shot length, azimuthDeg the compass bearing
// (0° = north = +Y, 90° = east = +X, clockwise), clinoDeg the inclination
// from horizontal (+90° = up).
//
// The returned vector satisfies:
//
//	Z          = length·sin(clino)
//	√(X²+Y²)   = length·|cos(clino)|
//	(X, Y)     lies along the azimuth direction
//
// Complexity: O(1)
func Displacement(length, azimuthDeg, clinoDeg float64) r3.Vec {
	az := DegToRad(azimuthDeg)
	cl := DegToRad(clinoDeg)
	horizontal := length * math.Cos(cl)

	return r3.Vec{
		X: horizontal * math.Sin(az), // east component
		Y: horizontal * math.Cos(az), // north component
		Z: length * math.Sin(cl),
	}
}

// Distance returns the Euclidean distance between two positions.
// Complexity: O(1)
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Lerp linearly interpolates between a and b by t; t is clamped to [0,1].
// Complexity: O(1)
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*clamp01(t)
}

// LerpVec linearly interpolates between two positions by t (clamped to [0,1]).
// Complexity: O(1)
func LerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(clamp01(t), r3.Sub(b, a)))
}

// clamp01 restricts t to the closed interval [0,1].
func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
