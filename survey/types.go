package survey

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/speleotools/caveline/geodesy"
)

// Sentinel errors for survey resolution.
var (
	// ErrNilSurvey indicates a nil *Survey was passed to Resolve.
	ErrNilSurvey = errors.New("survey: survey is nil")

	// ErrCyclicAlias indicates an alias chain that loops back on itself.
	// This is fatal to the whole recalculation; no partial state is usable.
	ErrCyclicAlias = errors.New("survey: cyclic alias chain")

	// ErrInvalidShot classifies a shot with a non-finite or negative
	// measurement. It never escapes Resolve; it is the error wrapped by
	// Shot.Validate and recorded per shot in the diagnostics.
	ErrInvalidShot = errors.New("survey: invalid shot")
)

// ShotType classifies a directional measurement.
type ShotType int

const (
	// ShotCenter is a primary centerline measurement.
	ShotCenter ShotType = iota

	// ShotSplay is a side measurement to a wall/feature point.
	ShotSplay

	// ShotAuxiliary is a secondary measurement off the centerline.
	ShotAuxiliary

	// ShotSurface is a surface leg tying the cave to outside stations.
	ShotSurface
)

// String returns the lowercase name of the shot type.
func (t ShotType) String() string {
	switch t {
	case ShotCenter:
		return "center"
	case ShotSplay:
		return "splay"
	case ShotAuxiliary:
		return "auxiliary"
	case ShotSurface:
		return "surface"
	default:
		return fmt.Sprintf("ShotType(%d)", int(t))
	}
}

// StationType mirrors the type of the shot that created the station.
type StationType int

const (
	StationCenter StationType = iota
	StationSplay
	StationAuxiliary
	StationSurface
)

// String returns the lowercase name of the station type.
func (t StationType) String() string {
	switch t {
	case StationCenter:
		return "center"
	case StationSplay:
		return "splay"
	case StationAuxiliary:
		return "auxiliary"
	case StationSurface:
		return "surface"
	default:
		return fmt.Sprintf("StationType(%d)", int(t))
	}
}

// stationTypeFor maps a traversed shot's type onto its destination station.
func stationTypeFor(t ShotType) StationType {
	switch t {
	case ShotSplay:
		return StationSplay
	case ShotAuxiliary:
		return StationAuxiliary
	case ShotSurface:
		return StationSurface
	default:
		return StationCenter
	}
}

// Shot is a single immutable directional measurement between two named
// stations: length in meters, azimuth as a compass bearing in degrees
// (0° = north, clockwise), clino in degrees from horizontal.
type Shot struct {
	From    string
	To      string
	Length  float64
	Azimuth float64
	Clino   float64
	Type    ShotType
}

// Validate reports why the shot cannot participate in resolution, or nil.
// A shot is invalid when any numeric field is non-finite, the length is
// negative, the clino is outside [−90, 90], or a station name is empty.
// Complexity: O(1)
func (s Shot) Validate() error {
	switch {
	case s.From == "" || s.To == "":
		return fmt.Errorf("%w: empty station name (%q→%q)", ErrInvalidShot, s.From, s.To)
	case !isFinite(s.Length) || !isFinite(s.Azimuth) || !isFinite(s.Clino):
		return fmt.Errorf("%w: non-finite measurement %q→%q (length=%v azimuth=%v clino=%v)",
			ErrInvalidShot, s.From, s.To, s.Length, s.Azimuth, s.Clino)
	case s.Length < 0:
		return fmt.Errorf("%w: negative length %v (%q→%q)", ErrInvalidShot, s.Length, s.From, s.To)
	case s.Clino < -90 || s.Clino > 90:
		return fmt.Errorf("%w: clino %v outside [-90,90] (%q→%q)", ErrInvalidShot, s.Clino, s.From, s.To)
	default:
		return nil
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Metadata carries the per-survey context recorded in the field.
type Metadata struct {
	// Date the survey was shot; used for declination lookups.
	Date time.Time

	// Declination is the magnetic declination in degrees applied to every
	// azimuth (compass → true bearing).
	Declination float64

	// Convergence is the meridian convergence in degrees at the cave's fix
	// point (true → grid bearing). Zero when the cave is not geo-referenced.
	Convergence float64

	// Team and Instrument are free-form bookkeeping.
	Team       string
	Instrument string
}

// Station is a named survey point with a resolved position in the local
// Cartesian frame. Projected and WGS84 stay nil until the owning cave is
// geo-referenced. Survey names the owning survey; ownership is by name,
// not pointer, so the object graph stays acyclic.
type Station struct {
	Name     string
	Position r3.Vec
	Type     StationType
	Survey   string

	Projected *geodesy.Projected
	WGS84     *geodesy.LatLon
}

// Survey is an ordered list of shots plus the state derived from them.
// Stations, InvalidShotIDs, OrphanShotIDs and Isolated are outputs of the
// last resolution and are rebuilt from scratch on every call.
type Survey struct {
	// Name is unique within the owning cave.
	Name string

	// Start names the station resolution begins at. When empty, the
	// from-station of the first valid shot is the implicit root.
	Start string

	// Shots is the ordered measurement list. Diagnostics reference shots
	// by index into this slice.
	Shots []Shot

	// Meta is the field context (date, declination, convergence, team).
	Meta Metadata

	// Stations is the resolved station map, populated by Resolve.
	Stations map[string]*Station

	// InvalidShotIDs and OrphanShotIDs are diagnostic shot indices.
	InvalidShotIDs []int
	OrphanShotIDs  []int

	// Isolated is set by the cave aggregator when this survey's start
	// station was not found in previously resolved surveys.
	Isolated bool
}

// Diagnostics is the per-resolution diagnostic summary returned alongside
// the station map. Indices refer to Survey.Shots.
type Diagnostics struct {
	InvalidShotIDs []int
	OrphanShotIDs  []int
}

// Aliases maps alternate station names to canonical ones.
type Aliases map[string]string

// Canonical follows the alias chain from name to its canonical station.
// Returns ErrCyclicAlias if the chain revisits a name.
// Complexity: O(chain length)
func (a Aliases) Canonical(name string) (string, error) {
	if len(a) == 0 {
		return name, nil
	}

	seen := map[string]struct{}{name: {}}
	cur := name
	for {
		next, ok := a[cur]
		if !ok {
			return cur, nil
		}
		if _, dup := seen[next]; dup {
			return "", fmt.Errorf("%w: starting from %q", ErrCyclicAlias, name)
		}
		seen[next] = struct{}{}
		cur = next
	}
}

// Validate walks every alias chain and returns ErrCyclicAlias on a loop.
// Complexity: O(n · chain length)
func (a Aliases) Validate() error {
	for name := range a {
		if _, err := a.Canonical(name); err != nil {
			return err
		}
	}

	return nil
}
