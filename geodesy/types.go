package geodesy

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors for coordinate conversion.
var (
	// ErrNilSystem indicates a nil System was passed where one is required.
	ErrNilSystem = errors.New("geodesy: coordinate system is nil")

	// ErrOutOfDomain indicates a coordinate outside the valid area of the
	// selected projected system (e.g. an EOV easting on another continent).
	ErrOutOfDomain = errors.New("geodesy: coordinate outside projection domain")

	// ErrBadZone indicates a UTM zone outside 1..60.
	ErrBadZone = errors.New("geodesy: UTM zone must be in 1..60")

	// ErrNilProvider indicates a nil DeclinationProvider was wrapped.
	ErrNilProvider = errors.New("geodesy: declination provider is nil")
)

// LatLon is a WGS84 geographic coordinate in decimal degrees.
// Lat is positive north, Lon positive east.
type LatLon struct {
	Lat float64
	Lon float64
}

// Projected is a planar coordinate in a projected system.
// Easting grows toward grid east, Northing toward grid north, in meters.
type Projected struct {
	Easting  float64
	Northing float64
}

// FixPoint ties a named station to a projected coordinate, anchoring the
// whole local survey frame to the national grid.
type FixPoint struct {
	// StationName is the merged station the coordinate belongs to.
	StationName string

	// Coordinate is the surveyed grid position of that station.
	Coordinate Projected

	// Elevation is the station's height above the reference level, meters.
	Elevation float64
}

// System is a projected coordinate system able to convert to and from
// WGS84 geographic coordinates.
type System interface {
	// Name returns a short identifier such as "EOV" or "UTM34N".
	Name() string

	// FromWGS84 projects a geographic coordinate onto the grid.
	FromWGS84(ll LatLon) (Projected, error)

	// ToWGS84 inverts the projection.
	ToWGS84(p Projected) (LatLon, error)
}

// ToProjected shifts a local position onto the grid relative to an anchor:
// the anchor's local position maps exactly to the anchor's grid coordinate,
// and local +X/+Y offsets become easting/northing offsets.
// Complexity: O(1)
func ToProjected(local, anchorLocal r3.Vec, anchor Projected) Projected {
	return Projected{
		Easting:  anchor.Easting + (local.X - anchorLocal.X),
		Northing: anchor.Northing + (local.Y - anchorLocal.Y),
	}
}

// ToLocal inverts ToProjected. z is carried through unchanged because the
// grid is planar; callers keep elevation in the local frame.
// Complexity: O(1)
func ToLocal(p Projected, anchorLocal r3.Vec, anchor Projected, z float64) r3.Vec {
	return r3.Vec{
		X: anchorLocal.X + (p.Easting - anchor.Easting),
		Y: anchorLocal.Y + (p.Northing - anchor.Northing),
		Z: z,
	}
}
