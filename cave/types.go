package cave

import (
	"errors"
	"io"
	"log/slog"

	"github.com/speleotools/caveline/geodesy"
	"github.com/speleotools/caveline/survey"
)

// Sentinel errors for cave recalculation. All of them are fatal: when one
// is returned the caller must not assume any partial state is usable.
var (
	// ErrNilCave indicates a nil *Cave was passed to Recalculate.
	ErrNilCave = errors.New("cave: cave is nil")

	// ErrNoSurveys indicates a cave with an empty survey list.
	ErrNoSurveys = errors.New("cave: cave has no surveys")

	// ErrDuplicateSurvey indicates two surveys share a name; survey names
	// key the diagnostics and must be unique within a cave.
	ErrDuplicateSurvey = errors.New("cave: duplicate survey name")

	// ErrNilSurveyEntry indicates a nil entry in the survey list.
	ErrNilSurveyEntry = errors.New("cave: nil survey in list")

	// ErrFixPoint indicates the configured fix point cannot be used with
	// the configured coordinate system.
	ErrFixPoint = errors.New("cave: unusable fix point")
)

// Cave is a named, ordered collection of surveys plus the merged state
// derived from them. Ownership is strictly top-down: surveys are reached
// through the cave, stations through their survey or the merged map, and
// back-references are names, never pointers.
type Cave struct {
	Name string

	// Surveys in definition order; the order decides anchoring.
	Surveys []*survey.Survey

	// Stations is the cave-wide merged station map, rebuilt by Recalculate.
	Stations map[string]*survey.Station

	// System is the projected coordinate system, nil when the cave is not
	// geo-referenced.
	System geodesy.System

	// FixPoints tie stations to grid coordinates. The first fix point
	// anchors the cave; additional ones are checked against it and their
	// misfit reported.
	FixPoints []geodesy.FixPoint

	// Aliases map alternate station names to canonical ones, cave-wide.
	Aliases survey.Aliases
}

// Ambiguity records two surveys defining the same non-start station name.
type Ambiguity struct {
	Station      string
	FirstSurvey  string
	SecondSurvey string
}

// Diagnostics accumulates every non-fatal problem found during a
// recalculation. Shot indices refer to the owning survey's shot list.
type Diagnostics struct {
	// InvalidShots and OrphanShots are keyed by survey name.
	InvalidShots map[string][]int
	OrphanShots  map[string][]int

	// IsolatedSurveys lists surveys whose start station was not found in
	// previously resolved surveys.
	IsolatedSurveys []string

	// AmbiguousStations lists cross-survey name collisions.
	AmbiguousStations []Ambiguity
}

// Clean reports whether the recalculation produced no diagnostics at all.
func (d Diagnostics) Clean() bool {
	return len(d.InvalidShots) == 0 &&
		len(d.OrphanShots) == 0 &&
		len(d.IsolatedSurveys) == 0 &&
		len(d.AmbiguousStations) == 0
}

// Options configures a recalculation run.
type Options struct {
	// Logger receives structured progress and warning records.
	Logger *slog.Logger

	// Declination, when set, fills in the magnetic declination for
	// surveys that carry a date but no measured declination, using the
	// geo-referenced position of the cave.
	Declination geodesy.DeclinationProvider
}

// Option is a functional option for Recalculate.
type Option func(*Options)

// DefaultOptions returns the default recalculation configuration:
// the process-wide default logger and no declination provider.
func DefaultOptions() Options {
	return Options{Logger: slog.Default()}
}

// WithLogger directs structured log output to l. A nil l silences logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.Logger = l
	}
}

// WithDeclinationProvider installs a magnetic declination source used for
// surveys that have a date but no recorded declination.
func WithDeclinationProvider(p geodesy.DeclinationProvider) Option {
	return func(o *Options) { o.Declination = p }
}
