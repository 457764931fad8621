package geodesy

import (
	"fmt"
	"math"
	"time"
)

// DeclinationProvider supplies magnetic declination — the clockwise angle
// in degrees from true north to magnetic north — for a date and position.
// Implementations may call remote models (e.g. WMM/IGRF services); the
// resolver itself only ever sees the returned scalar.
type DeclinationProvider interface {
	Declination(date time.Time, at LatLon) (float64, error)
}

// StaticDeclination is a fixed declination, used when the survey metadata
// already records the value measured in the field.
type StaticDeclination float64

// Declination implements DeclinationProvider.
func (s StaticDeclination) Declination(time.Time, LatLon) (float64, error) {
	return float64(s), nil
}

// declKey buckets lookups by calendar month and ~1 km of position;
// declination varies far too slowly for finer caching to matter.
type declKey struct {
	year  int
	month time.Month
	lat   int32 // centidegrees
	lon   int32
}

// CachingProvider memoizes an inner DeclinationProvider. It is not safe
// for concurrent use; recalculation of a single cave is single-threaded
// and separate caves should hold separate providers.
type CachingProvider struct {
	inner DeclinationProvider
	cache map[declKey]float64
}

// NewCachingProvider wraps inner with an in-memory cache.
// Returns ErrNilProvider if inner is nil.
func NewCachingProvider(inner DeclinationProvider) (*CachingProvider, error) {
	if inner == nil {
		return nil, ErrNilProvider
	}

	return &CachingProvider{
		inner: inner,
		cache: make(map[declKey]float64),
	}, nil
}

// Declination implements DeclinationProvider, consulting the cache first.
func (c *CachingProvider) Declination(date time.Time, at LatLon) (float64, error) {
	key := declKey{
		year:  date.Year(),
		month: date.Month(),
		lat:   int32(math.Round(at.Lat * 100)),
		lon:   int32(math.Round(at.Lon * 100)),
	}
	if d, ok := c.cache[key]; ok {
		return d, nil
	}

	d, err := c.inner.Declination(date, at)
	if err != nil {
		return 0, fmt.Errorf("geodesy: declination lookup %d-%02d lat=%.2f lon=%.2f: %w",
			key.year, key.month, at.Lat, at.Lon, err)
	}
	c.cache[key] = d

	return d, nil
}

// Len reports how many distinct lookups are cached.
func (c *CachingProvider) Len() int { return len(c.cache) }
