// Package geo resolves country names to map coordinates.
package geo

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

//go:embed countries.csv
var countriesCSV []byte

// Location is an approximate country centroid.
type Location struct {
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locator maps normalised country names and aliases to locations.
type Locator struct {
	byName map[string]Location
}

var (
	defaultOnce    sync.Once
	defaultLocator *Locator
	defaultErr     error
)

// Default returns the locator built from the embedded centroid table.
func Default() (*Locator, error) {
	defaultOnce.Do(func() {
		defaultLocator, defaultErr = Parse(countriesCSV)
	})
	return defaultLocator, defaultErr
}

// Parse reads a centroid table with columns name, lat, lon and an optional
// |-separated aliases column.
func Parse(data []byte) (*Locator, error) {
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.WithTypes(map[string]series.Type{
			"name":    series.String,
			"lat":     series.Float,
			"lon":     series.Float,
			"aliases": series.String,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTable, df.Err)
	}
	for _, col := range []string{"name", "lat", "lon"} {
		if !hasColumn(df, col) {
			return nil, fmt.Errorf("%w: missing column %q", ErrTable, col)
		}
	}

	names := df.Col("name").Records()
	lats := df.Col("lat").Float()
	lons := df.Col("lon").Float()
	var aliases []string
	if hasColumn(df, "aliases") {
		aliases = df.Col("aliases").Records()
	}

	l := &Locator{byName: make(map[string]Location, len(names))}
	for i, name := range names {
		loc := Location{Country: name, Lat: lats[i], Lon: lons[i]}
		l.byName[normalize(name)] = loc
		if aliases == nil || aliases[i] == "" || aliases[i] == "NaN" {
			continue
		}
		for _, a := range strings.Split(aliases[i], "|") {
			l.byName[normalize(a)] = loc
		}
	}
	return l, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Lookup resolves a country name, case- and whitespace-insensitively.
func (l *Locator) Lookup(country string) (Location, bool) {
	loc, ok := l.byName[normalize(country)]
	return loc, ok
}

// Len returns the number of known names, aliases included.
func (l *Locator) Len() int { return len(l.byName) }
