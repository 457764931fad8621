// Package cave merges the per-survey station maps of a cave into one
// cave-wide map and applies geo-referencing.
//
// Recalculate processes surveys in definition order. The first survey is
// anchored at the local origin; each later survey is anchored at the
// already-resolved position of its start station. A survey whose start
// cannot be found in the merged map is flagged isolated and anchored at
// the origin as a fallback so it still renders, but is reported for user
// attention. Cross-survey name collisions for non-start stations are
// surfaced as ambiguity diagnostics; the first resolution keeps the
// position, the collision never silently wins.
//
// When the cave carries a coordinate system and a fix point, the meridian
// convergence at the fix point corrects every azimuth during resolution,
// and every merged station additionally receives projected and WGS84
// coordinates. Without a system those coordinates are simply absent.
//
// Per-shot and per-survey problems accumulate as diagnostics alongside
// the result. Only structurally corrupt input — a cave with no surveys,
// duplicate survey names, a cyclic alias chain, an unprojectable fix
// point — aborts the recalculation, and no partial state is usable after
// such an error.
package cave
