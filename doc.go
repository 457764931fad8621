// Package caveline resolves raw cave-survey measurements into consistent
// per-cave 3D models and answers graph queries over the resolved network.
//
// What is caveline?
//
//	A pure in-process computation library that brings together:
//		• Shot resolution: ordered polar shots (length, azimuth, clino)
//		  traversed into absolute station positions, with diagnostics
//		• Cave aggregation: per-survey station maps merged and re-anchored
//		  into one cave-wide map, isolated surveys flagged
//		• Geodesy: EOV and UTM projections ⇄ WGS84, meridian convergence,
//		  magnetic declination providers
//		• Graph analysis: fundamental cycles (loop closure), shortest
//		  paths, and termination-bounded components
//
// Everything is organized under flat subpackages:
//
//	geom/         — vector and bearing primitives, gradient helpers
//	geodesy/      — projected coordinate systems, convergence, declination
//	survey/       — shot, station and survey model + the resolver
//	cave/         — cave model + the aggregation/recalculation pipeline
//	stationgraph/ — undirected weighted multigraph over stations
//	analysis/     — cycles, shortest paths, bounded components
//	attrparam/    — tagged-variant attribute parameter schemas
//
// Quick ASCII example:
//
//	    A───B
//	        │
//	    D───C
//
//	four stations surveyed with three shots; adding a closing shot D─A
//	turns the path into a loop that FindCycles reports with its length,
//	making the closure error inspectable.
//
// All computation is synchronous and deterministic: a recalculation
// re-derives a cave's station map, graph and diagnostics from scratch.
// Two different caves share no mutable state, so they may be recalculated
// concurrently; a single cave must not be.
package caveline
