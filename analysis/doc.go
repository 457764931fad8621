// Package analysis answers the graph queries asked of a resolved cave:
// fundamental cycles for loop-closure inspection, shortest paths between
// stations, and termination-bounded components for attribute scoping.
//
// FindCycles builds a depth-first spanning forest; every non-tree edge
// closes exactly one fundamental cycle, reported once with its closed
// path and summed edge weight. A pure tree yields an empty list, and
// disconnected components are traversed independently — a cycle never
// spans two components.
//
// ShortestPath runs Dijkstra over the non-negative edge weights with ties
// broken by discovery order; a disconnected pair is a normal no-path
// result, not an error.
//
// BoundedComponent expands breadth-first from a start station and stops
// at every termination station, returning the induced sub-network
// (stations, edge IDs, reached boundary) that callers use to scope
// attributes to a sub-area of the cave.
//
// All results are deterministic for a given graph.
package analysis
