// Package prepared builds the read-only snapshot every chart renderer reads from.
package prepared

import (
	"fmt"

	"github.com/okian/hoopboard/internal/domain/bucket"
	"github.com/okian/hoopboard/internal/domain/geo"
	"github.com/okian/hoopboard/internal/domain/player"
	"github.com/okian/hoopboard/internal/domain/stats"
)

// DefaultHistogramBins is the number of age histogram bins.
const DefaultHistogramBins = 20

// CountryPoint is a located country with its player count.
type CountryPoint struct {
	Country string
	Lat     float64
	Lon     float64
	N       int
}

// Snapshot is the prepared data: the record set plus every derived table.
// It is built once by Build and never mutated; accessors return copies.
type Snapshot struct {
	dataset    *player.Dataset
	scheme     bucket.Scheme
	intervals  []string
	teams      []stats.TeamRow
	ratings    []stats.Count
	countries  []stats.Count
	positions  []stats.Count
	ageBins    []stats.Bin
	points     []CountryPoint
	unlocated  []string
	unbucketed int
}

// Options tune the derived tables.
type Options struct {
	Scheme        bucket.Scheme
	HistogramBins int
	Locator       *geo.Locator
}

// DefaultOptions returns the dashboard's standard scheme and bin count with
// the embedded country table.
func DefaultOptions() (Options, error) {
	loc, err := geo.Default()
	if err != nil {
		return Options{}, err
	}
	return Options{Scheme: bucket.Default, HistogramBins: DefaultHistogramBins, Locator: loc}, nil
}

// Build derives every table from ds. It is a pure function of its inputs:
// building twice from the same record set yields identical snapshots.
func Build(ds *player.Dataset, opts Options) (*Snapshot, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrPrepare)
	}
	if opts.Scheme.Len() == 0 {
		return nil, fmt.Errorf("%w: empty bucket scheme", ErrPrepare)
	}
	if opts.HistogramBins <= 0 {
		return nil, fmt.Errorf("%w: histogram bins must be positive", ErrPrepare)
	}
	if opts.Locator == nil {
		return nil, fmt.Errorf("%w: nil country locator", ErrPrepare)
	}

	teams, err := stats.TeamMeans(ds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrepare, err)
	}

	ratings := ds.Floats(player.ColRating)
	s := &Snapshot{
		dataset:    ds,
		scheme:     opts.Scheme,
		intervals:  opts.Scheme.Assign(ratings),
		teams:      teams,
		ratings:    stats.RatingCounts(opts.Scheme, ratings),
		countries:  stats.ValueCounts(ds.Labels(player.ColCountry)),
		positions:  stats.ValueCounts(ds.Labels(player.ColPosition)),
		ageBins:    stats.AgeHistogram(ds.Ages(), opts.HistogramBins),
		unbucketed: stats.Unbucketed(opts.Scheme, ratings),
	}

	for _, c := range s.countries {
		loc, ok := opts.Locator.Lookup(c.Label)
		if !ok {
			s.unlocated = append(s.unlocated, c.Label)
			continue
		}
		s.points = append(s.points, CountryPoint{Country: c.Label, Lat: loc.Lat, Lon: loc.Lon, N: c.N})
	}
	return s, nil
}

// Dataset returns the underlying record set.
func (s *Snapshot) Dataset() *player.Dataset { return s.dataset }

// Scheme returns the rating interval scheme.
func (s *Snapshot) Scheme() bucket.Scheme { return s.scheme }

// Intervals returns the rating interval label of every record, "" when unbucketed.
func (s *Snapshot) Intervals() []string { return clone(s.intervals) }

// Teams returns the team aggregate, one row per team sorted by name.
func (s *Snapshot) Teams() []stats.TeamRow { return clone(s.teams) }

// Ratings returns the rating count series in interval order.
func (s *Snapshot) Ratings() []stats.Count { return clone(s.ratings) }

// Countries returns the country count table.
func (s *Snapshot) Countries() []stats.Count { return clone(s.countries) }

// Positions returns the position count table.
func (s *Snapshot) Positions() []stats.Count { return clone(s.positions) }

// AgeBins returns the age histogram.
func (s *Snapshot) AgeBins() []stats.Bin { return clone(s.ageBins) }

// CountryPoints returns the located countries in country table order.
func (s *Snapshot) CountryPoints() []CountryPoint { return clone(s.points) }

// Unlocated returns countries that could not be placed on the map.
func (s *Snapshot) Unlocated() []string { return clone(s.unlocated) }

// Unbucketed returns the number of records outside every rating interval.
func (s *Snapshot) Unbucketed() int { return s.unbucketed }

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
