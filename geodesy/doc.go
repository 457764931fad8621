// Package geodesy converts between the local Cartesian survey frame,
// projected national grids, and WGS84 geographic coordinates, and supplies
// the two angular corrections applied to compass azimuths before shot
// resolution: meridian convergence and magnetic declination.
//
// Two projected systems are provided:
//
//   - EOV — the Hungarian national grid (HD72 datum on the IUGG67
//     ellipsoid, conformal double projection through the Gauss sphere).
//   - UTM — universal transverse Mercator on WGS84, parameterized by
//     zone and hemisphere.
//
// A cave is tied to a grid through a FixPoint: a projected coordinate
// assigned to one named station. ToProjected and ToLocal shift between
// the local frame and the grid relative to that anchor; System.ToWGS84
// and System.FromWGS84 handle the ellipsoidal legs. A cave with no
// configured system simply has no projected or WGS84 coordinates; that
// is an absence, not an error.
//
// Convergence is derived numerically from the forward projection, so both
// systems share one definition: the clockwise angle from true north to
// grid north at a point. Declination is supplied by a DeclinationProvider
// collaborator (date + position → degrees); CachingProvider memoizes
// lookups so resolution never waits on a remote model.
package geodesy
