package geodesy

import (
	"fmt"
	"math"

	"github.com/speleotools/caveline/geom"
)

// UTM grid constants.
const (
	utmScale          = 0.9996
	utmFalseEasting   = 500000.0
	utmFalseNorthingS = 10000000.0 // southern hemisphere offset
)

// UTM is a universal transverse Mercator zone on WGS84.
type UTM struct {
	// Zone is the 6°-wide longitude zone, 1..60.
	Zone int

	// Southern selects the southern-hemisphere false northing.
	Southern bool
}

// NewUTM returns the UTM system for the given zone, or ErrBadZone.
func NewUTM(zone int, southern bool) (UTM, error) {
	if zone < 1 || zone > 60 {
		return UTM{}, fmt.Errorf("%w: got %d", ErrBadZone, zone)
	}

	return UTM{Zone: zone, Southern: southern}, nil
}

// UTMZoneFor returns the standard zone containing the given coordinate.
// Complexity: O(1)
func UTMZoneFor(ll LatLon) UTM {
	zone := int(math.Floor((ll.Lon+180)/6))%60 + 1

	return UTM{Zone: zone, Southern: ll.Lat < 0}
}

// Name implements System.
func (u UTM) Name() string {
	hemi := "N"
	if u.Southern {
		hemi = "S"
	}

	return fmt.Sprintf("UTM%d%s", u.Zone, hemi)
}

// centralMeridian returns the zone's central meridian in radians.
func (u UTM) centralMeridian() float64 {
	return geom.DegToRad(float64(u.Zone-1)*6 - 180 + 3)
}

// FromWGS84 projects a WGS84 coordinate into the zone using the standard
// transverse Mercator series (Snyder, Map Projections — A Working Manual,
// eq. 8-9..8-15).
func (u UTM) FromWGS84(ll LatLon) (Projected, error) {
	if u.Zone < 1 || u.Zone > 60 {
		return Projected{}, fmt.Errorf("%w: got %d", ErrBadZone, u.Zone)
	}
	if ll.Lat < -84 || ll.Lat > 84 {
		return Projected{}, fmt.Errorf("%w: lat=%.4f beyond UTM coverage", ErrOutOfDomain, ll.Lat)
	}

	a := wgs84Ellipsoid.a
	e2 := wgs84Ellipsoid.e2()
	ep2 := e2 / (1 - e2)

	lat := geom.DegToRad(ll.Lat)
	dLon := geom.DegToRad(ll.Lon) - u.centralMeridian()

	sinLat, cosLat := math.Sincos(lat)
	n := a / math.Sqrt(1-e2*sinLat*sinLat)
	t := math.Tan(lat) * math.Tan(lat)
	c := ep2 * cosLat * cosLat
	ax := cosLat * dLon

	m := meridianArc(lat)

	easting := utmFalseEasting + utmScale*n*(ax+
		(1-t+c)*math.Pow(ax, 3)/6+
		(5-18*t+t*t+72*c-58*ep2)*math.Pow(ax, 5)/120)

	northing := utmScale * (m + n*math.Tan(lat)*(ax*ax/2+
		(5-t+9*c+4*c*c)*math.Pow(ax, 4)/24+
		(61-58*t+t*t+600*c-330*ep2)*math.Pow(ax, 6)/720))
	if u.Southern {
		northing += utmFalseNorthingS
	}

	return Projected{Easting: easting, Northing: northing}, nil
}

// ToWGS84 inverts the projection via the footpoint-latitude series.
func (u UTM) ToWGS84(p Projected) (LatLon, error) {
	if u.Zone < 1 || u.Zone > 60 {
		return LatLon{}, fmt.Errorf("%w: got %d", ErrBadZone, u.Zone)
	}

	a := wgs84Ellipsoid.a
	e2 := wgs84Ellipsoid.e2()
	ep2 := e2 / (1 - e2)

	northing := p.Northing
	if u.Southern {
		northing -= utmFalseNorthingS
	}

	// Footpoint latitude.
	m := northing / utmScale
	mu := m / (a * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))
	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
	fp := mu +
		(3*e1/2-27*math.Pow(e1, 3)/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*math.Pow(e1, 4)/32)*math.Sin(4*mu) +
		(151*math.Pow(e1, 3)/96)*math.Sin(6*mu) +
		(1097*math.Pow(e1, 4)/512)*math.Sin(8*mu)

	sinFp, cosFp := math.Sincos(fp)
	c1 := ep2 * cosFp * cosFp
	t1 := math.Tan(fp) * math.Tan(fp)
	n1 := a / math.Sqrt(1-e2*sinFp*sinFp)
	r1 := a * (1 - e2) / math.Pow(1-e2*sinFp*sinFp, 1.5)
	d := (p.Easting - utmFalseEasting) / (n1 * utmScale)

	lat := fp - (n1*math.Tan(fp)/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*math.Pow(d, 4)/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*math.Pow(d, 6)/720)
	lon := u.centralMeridian() + (d-
		(1+2*t1+c1)*math.Pow(d, 3)/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*math.Pow(d, 5)/120)/cosFp

	return LatLon{Lat: geom.RadToDeg(lat), Lon: geom.RadToDeg(lon)}, nil
}

// meridianArc returns the meridional arc length from the equator (Snyder
// eq. 3-21) on WGS84.
func meridianArc(lat float64) float64 {
	a := wgs84Ellipsoid.a
	e2 := wgs84Ellipsoid.e2()
	e4 := e2 * e2
	e6 := e4 * e2

	return a * ((1-e2/4-3*e4/64-5*e6/256)*lat -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*lat) +
		(15*e4/256+45*e6/1024)*math.Sin(4*lat) -
		(35*e6/3072)*math.Sin(6*lat))
}
