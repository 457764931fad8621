package geodesy

import (
	"fmt"
	"math"

	"github.com/speleotools/caveline/geom"
)

// EOV projection constants (Egységes Országos Vetület, the Hungarian
// national grid). The projection is a conformal double projection: the
// IUGG67 ellipsoid is mapped onto a Gauss sphere, which is then mapped
// onto a reduced oblique cylinder through the Gellérthegy reference point.
const (
	eovLon0Deg = 19.0 + 2.0/60 + 54.8584/3600 // central meridian, HD72 degrees
	eovLat0Deg = 47.1                         // sphere latitude of the projection center

	eovSphereRadius = 6379743.001    // Gauss sphere radius R, meters
	eovN            = 1.000719704936 // conformal exponent n
	eovK            = 1.003110007693 // conformal scale K
	eovScale        = 0.99993        // cylinder reduction m0

	eovFalseEasting  = 650000.0
	eovFalseNorthing = 200000.0
)

// EOV working area; coordinates outside it are rejected as corrupt input
// rather than extrapolated.
const (
	eovMinLat, eovMaxLat = 45.5, 49.0
	eovMinLon, eovMaxLon = 16.0, 23.0
	eovMinE, eovMaxE     = 400000.0, 960000.0
	eovMinN, eovMaxN     = 0.0, 400000.0
)

// EOV is the Hungarian national projected system. The zero value is ready
// to use; the system carries no state.
type EOV struct{}

// Name implements System.
func (EOV) Name() string { return "EOV" }

// FromWGS84 projects a WGS84 coordinate onto the EOV grid.
// The WGS84 position is first shifted onto the HD72 datum, then run
// through the double projection.
func (EOV) FromWGS84(ll LatLon) (Projected, error) {
	latHD, lonHD, _ := hd72ToWGS84.inverse().apply(
		wgs84Ellipsoid, iugg67Ellipsoid,
		geom.DegToRad(ll.Lat), geom.DegToRad(ll.Lon), 0,
	)

	latDeg, lonDeg := geom.RadToDeg(latHD), geom.RadToDeg(lonHD)
	if latDeg < eovMinLat || latDeg > eovMaxLat || lonDeg < eovMinLon || lonDeg > eovMaxLon {
		return Projected{}, fmt.Errorf("%w: lat=%.4f lon=%.4f not in EOV area", ErrOutOfDomain, ll.Lat, ll.Lon)
	}

	return eovForward(latHD, lonHD), nil
}

// ToWGS84 inverts the projection and shifts the result onto WGS84.
func (EOV) ToWGS84(p Projected) (LatLon, error) {
	if p.Easting < eovMinE || p.Easting > eovMaxE || p.Northing < eovMinN || p.Northing > eovMaxN {
		return LatLon{}, fmt.Errorf("%w: E=%.1f N=%.1f not in EOV area", ErrOutOfDomain, p.Easting, p.Northing)
	}

	latHD, lonHD := eovInverse(p)
	latW, lonW, _ := hd72ToWGS84.apply(iugg67Ellipsoid, wgs84Ellipsoid, latHD, lonHD, 0)

	return LatLon{Lat: geom.RadToDeg(latW), Lon: geom.RadToDeg(lonW)}, nil
}

// eovForward maps HD72 geodetic coordinates (radians) to the grid.
func eovForward(lat, lon float64) Projected {
	// 1) Ellipsoid → Gauss sphere (conformal).
	psi := eovSphereLat(lat)
	dLon := eovN * (lon - geom.DegToRad(eovLon0Deg))

	// 2) Rotate so the projection center lands on the auxiliary equator.
	lat0 := geom.DegToRad(eovLat0Deg)
	sinPsi, cosPsi := math.Sincos(psi)
	sin0, cos0 := math.Sincos(lat0)
	sinRot := sinPsi*cos0 - cosPsi*sin0*math.Cos(dLon)
	lonRot := math.Atan2(cosPsi*math.Sin(dLon), cosPsi*cos0*math.Cos(dLon)+sinPsi*sin0)

	// 3) Sphere → reduced cylinder (Mercator on the rotated sphere).
	return Projected{
		Easting:  eovFalseEasting + eovSphereRadius*eovScale*lonRot,
		Northing: eovFalseNorthing + eovSphereRadius*eovScale*math.Atanh(sinRot),
	}
}

// eovInverse maps grid coordinates back to HD72 geodetic coordinates (radians).
func eovInverse(p Projected) (lat, lon float64) {
	// 1) Cylinder → rotated sphere.
	latRot := 2*math.Atan(math.Exp((p.Northing-eovFalseNorthing)/(eovSphereRadius*eovScale))) - math.Pi/2
	lonRot := (p.Easting - eovFalseEasting) / (eovSphereRadius * eovScale)

	// 2) Undo the rotation.
	lat0 := geom.DegToRad(eovLat0Deg)
	sinRot, cosRot := math.Sincos(latRot)
	sin0, cos0 := math.Sincos(lat0)
	psi := math.Asin(sinRot*cos0 + cosRot*sin0*math.Cos(lonRot))
	dLon := math.Atan2(cosRot*math.Sin(lonRot), cosRot*cos0*math.Cos(lonRot)-sinRot*sin0)

	// 3) Gauss sphere → ellipsoid.
	return eovEllipsoidLat(psi), geom.DegToRad(eovLon0Deg) + dLon/eovN
}

// eovSphereLat maps ellipsoidal latitude to the conformal sphere latitude.
func eovSphereLat(lat float64) float64 {
	e := math.Sqrt(iugg67Ellipsoid.e2())
	sinLat := math.Sin(lat)
	t := eovK *
		math.Pow(math.Tan(math.Pi/4+lat/2), eovN) *
		math.Pow((1-e*sinLat)/(1+e*sinLat), eovN*e/2)

	return 2*math.Atan(t) - math.Pi/2
}

// eovEllipsoidLat inverts eovSphereLat by fixed-point iteration.
func eovEllipsoidLat(psi float64) float64 {
	e := math.Sqrt(iugg67Ellipsoid.e2())
	base := math.Pow(math.Tan(math.Pi/4+psi/2)/eovK, 1/eovN)

	lat := psi
	for i := 0; i < 16; i++ {
		sinLat := math.Sin(lat)
		next := 2*math.Atan(base*math.Pow((1+e*sinLat)/(1-e*sinLat), e/2)) - math.Pi/2
		if math.Abs(next-lat) < 1e-14 {
			return next
		}
		lat = next
	}

	return lat
}
