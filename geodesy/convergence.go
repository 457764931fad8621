package geodesy

import (
	"fmt"
	"math"

	"github.com/speleotools/caveline/geom"
)

// convergenceStepDeg is the latitude step used to trace the true meridian
// through a point; ~55 m on the ground, small enough that projection
// curvature over the step is far below the returned precision.
const convergenceStepDeg = 0.0005

// Convergence returns the meridian convergence at a projected point:
// the clockwise angle in degrees from true north to grid north. Positive
// means grid north lies east of true north (true bearings must be reduced
// by the convergence to become grid bearings).
//
// The angle is derived numerically from the forward projection — a short
// step along the true meridian is projected and compared against grid
// north — so every System shares one convergence definition.
//
// Complexity: O(1) projection calls.
func Convergence(sys System, at Projected) (float64, error) {
	if sys == nil {
		return 0, ErrNilSystem
	}

	ll, err := sys.ToWGS84(at)
	if err != nil {
		return 0, fmt.Errorf("geodesy: convergence at E=%.1f N=%.1f: %w", at.Easting, at.Northing, err)
	}

	north, err := sys.FromWGS84(LatLon{Lat: ll.Lat + convergenceStepDeg, Lon: ll.Lon})
	if err != nil {
		return 0, fmt.Errorf("geodesy: convergence at E=%.1f N=%.1f: %w", at.Easting, at.Northing, err)
	}

	// Direction of true north expressed in the grid frame; grid north
	// relative to true north is its negation.
	alpha := math.Atan2(north.Easting-at.Easting, north.Northing-at.Northing)

	return -geom.RadToDeg(alpha), nil
}
