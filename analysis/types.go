package analysis

import (
	"errors"
)

// Sentinel errors for analysis queries.
var (
	// ErrNilGraph indicates a nil *stationgraph.Graph.
	ErrNilGraph = errors.New("analysis: graph is nil")

	// ErrStationNotFound indicates a query named a station absent from the
	// graph.
	ErrStationNotFound = errors.New("analysis: station not found")
)

// Cycle is one fundamental cycle of the station graph. Path is the closed
// walk (first and last entry are the same station, no other repetition)
// and Length the sum of its edge weights. ID is a stable random identifier
// minted when the cycle is found, so UI selections survive re-ordering.
type Cycle struct {
	ID     string
	Path   []string
	Length float64
}

// Section is a shortest path between two stations: the ordered station
// names from one endpoint to the other, and the summed edge weights along
// it. A single-station section (From == To) has Length 0.
type Section struct {
	From   string
	To     string
	Path   []string
	Length float64
}

// Component is the sub-network reachable from a start station without
// expanding past any termination station. Stations lists every reached
// station in discovery order (terminations included), Boundary the subset
// of terminations actually reached, EdgeIDs the induced edges, and Length
// the summed weight of those edges.
type Component struct {
	Start    string
	Stations []string
	Boundary []string
	EdgeIDs  []int
	Length   float64
}
