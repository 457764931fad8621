// Package geom provides the vector and trigonometry primitives shared by
// the survey resolver and the geodesy layer.
//
// Positions are gonum spatial/r3 vectors in a local Cartesian frame with
// the surveying convention fixed throughout the library:
//
//	+X = east, +Y = north, +Z = up
//	azimuth 0° = north, 90° = east (compass bearing, clockwise)
//	clino 0° = horizontal, +90° = straight up, −90° = straight down
//
// Displacement converts a polar shot (length, azimuth, clino) into a
// Cartesian displacement; Distance measures resolved station separation.
// Lerp, LerpVec and Gradient provide the interpolation helpers used to
// attach visualization metadata (depth shading) to resolved stations.
// No rendering happens here.
package geom
