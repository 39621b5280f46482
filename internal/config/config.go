// Package config defines the dashboard configuration and its loading hooks.
//
// Conventions:
// - New(ctx) returns a Config populated with defaults.
// - Load(ctx) layers defaults, an optional YAML file and HOOPBOARD_ env vars.
// - Errors returned from this package wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/hoopboard/internal/domain/bucket"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8050".
	Addr string `koanf:"addr"`

	// Debug is the development toggle. It forces debug logging and enables
	// pretty-printed chart JSON.
	Debug bool `koanf:"debug"`

	// DataPath points at the player table (.csv, .xlsx, .db/.sqlite).
	DataPath string `koanf:"data_path"`
	// DataSheet selects the worksheet for .xlsx sources; empty means the first sheet.
	DataSheet string `koanf:"data_sheet"`
	// DataTable names the table read from SQLite sources.
	DataTable string `koanf:"data_table"`

	// Rating interval scheme: [BucketStart, BucketEnd) split every BucketWidth.
	BucketStart int `koanf:"bucket_start"`
	BucketEnd   int `koanf:"bucket_end"`
	BucketWidth int `koanf:"bucket_width"`

	// HistogramBins is the number of equal-width bins of the age histogram.
	HistogramBins int `koanf:"histogram_bins"`

	// GeoSizeMax is the largest marker size on the country map.
	GeoSizeMax float64 `koanf:"geo_size_max"`

	// PageTitle is the dashboard heading.
	PageTitle string `koanf:"page_title"`
	// AssetsHost overrides where the page loads the echarts scripts from;
	// empty keeps the public CDN.
	AssetsHost string `koanf:"assets_host"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":8050",
		Debug:         false,
		DataPath:      "data.csv",
		DataTable:     "players",
		BucketStart:   65,
		BucketEnd:     100,
		BucketWidth:   5,
		HistogramBins: 20,
		GeoSizeMax:    40,
		PageTitle:     "NBA PLAYERS DASHBOARD",
	}
}

// EffectiveLogLevel returns the level to apply, honouring the debug toggle.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// Validate checks the fields the dashboard cannot start without.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.HistogramBins <= 0:
		return fmt.Errorf("%w: histogram_bins must be positive, got %d", ErrInvalidConfig, c.HistogramBins)
	case c.GeoSizeMax <= 0:
		return fmt.Errorf("%w: geo_size_max must be positive, got %g", ErrInvalidConfig, c.GeoSizeMax)
	}
	if _, err := bucket.NewScheme(c.BucketStart, c.BucketEnd, c.BucketWidth); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
