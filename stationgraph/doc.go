// Package stationgraph builds the undirected weighted multigraph used for
// loop-closure and path analysis: one vertex per merged station, one edge
// per valid shot.
//
// Edge weights are the Euclidean distance between the resolved endpoint
// positions, not the recorded shot length — a re-measured leg that
// disagrees with the first resolution therefore carries its closure error
// in the difference between weight and tape length. Shots are recorded
// directionally but the graph is undirected for analysis purposes.
//
// Parallel edges between the same pair of stations are kept (each shot is
// its own edge); self-loops are rejected. Iteration orders (Stations,
// Edges, Incident) are deterministic.
//
// The graph is a plain value rebuilt after every recalculation; like the
// rest of the library it is not safe for concurrent mutation.
package stationgraph
