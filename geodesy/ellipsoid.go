package geodesy

import "math"

// ellipsoid is a reference ellipsoid given by semi-major axis a (meters)
// and flattening f.
type ellipsoid struct {
	a float64
	f float64
}

// Reference ellipsoids used by the supported systems.
var (
	// wgs84Ellipsoid underlies UTM and all geographic outputs.
	wgs84Ellipsoid = ellipsoid{a: 6378137.0, f: 1 / 298.257223563}

	// iugg67Ellipsoid (GRS67) underlies the HD72 datum of EOV.
	iugg67Ellipsoid = ellipsoid{a: 6378160.0, f: 1 / 298.247167427}
)

// e2 returns the first eccentricity squared.
func (e ellipsoid) e2() float64 { return e.f * (2 - e.f) }

// geocentric converts geodetic latitude/longitude (radians) and ellipsoidal
// height (meters) to Earth-centered Cartesian coordinates.
func (e ellipsoid) geocentric(lat, lon, h float64) (x, y, z float64) {
	e2 := e.e2()
	sinLat, cosLat := math.Sincos(lat)
	n := e.a / math.Sqrt(1-e2*sinLat*sinLat)

	x = (n + h) * cosLat * math.Cos(lon)
	y = (n + h) * cosLat * math.Sin(lon)
	z = (n*(1-e2) + h) * sinLat

	return x, y, z
}

// geodetic converts Earth-centered Cartesian coordinates back to geodetic
// latitude/longitude (radians) and ellipsoidal height. The latitude is
// solved by fixed-point iteration, which converges to sub-millimeter
// for terrestrial points in a handful of rounds.
func (e ellipsoid) geodetic(x, y, z float64) (lat, lon, h float64) {
	e2 := e.e2()
	p := math.Hypot(x, y)
	lon = math.Atan2(y, x)

	lat = math.Atan2(z, p*(1-e2))
	var n float64
	for i := 0; i < 12; i++ {
		sinLat := math.Sin(lat)
		n = e.a / math.Sqrt(1-e2*sinLat*sinLat)
		next := math.Atan2(z+e2*n*sinLat, p)
		if math.Abs(next-lat) < 1e-14 {
			lat = next
			break
		}
		lat = next
	}

	sinLat := math.Sin(lat)
	n = e.a / math.Sqrt(1-e2*sinLat*sinLat)
	if cosLat := math.Cos(lat); math.Abs(cosLat) > 1e-12 {
		h = p/cosLat - n
	} else {
		h = math.Abs(z) - n*(1-e2)
	}

	return lat, lon, h
}

// datumShift is a three-parameter geocentric translation between datums.
type datumShift struct {
	dx, dy, dz float64
}

// hd72ToWGS84 is the published HD72 → WGS84 translation (meters).
var hd72ToWGS84 = datumShift{dx: 52.17, dy: -71.82, dz: -14.9}

// apply transforms geodetic coordinates from one ellipsoid to another
// through geocentric space, adding the translation.
func (d datumShift) apply(from, to ellipsoid, lat, lon, h float64) (float64, float64, float64) {
	x, y, z := from.geocentric(lat, lon, h)

	return to.geodetic(x+d.dx, y+d.dy, z+d.dz)
}

// inverse returns the opposite translation.
func (d datumShift) inverse() datumShift {
	return datumShift{dx: -d.dx, dy: -d.dy, dz: -d.dz}
}
