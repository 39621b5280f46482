package service

import (
	"fmt"

	"github.com/okian/hoopboard/internal/adapters/source"
	"github.com/okian/hoopboard/internal/config"
	"github.com/okian/hoopboard/internal/domain/bucket"
	"github.com/okian/hoopboard/internal/domain/chart"
)

// OptionsFromConfig translates cfg into service options. The data path is
// included; callers may append WithDataPath to override it.
func OptionsFromConfig(cfg *config.Config) ([]Option, error) {
	scheme, err := bucket.NewScheme(cfg.BucketStart, cfg.BucketEnd, cfg.BucketWidth)
	if err != nil {
		return nil, fmt.Errorf("rating intervals: %w", err)
	}

	sourceOpts := []source.Option{source.WithTable(cfg.DataTable)}
	if cfg.DataSheet != "" {
		sourceOpts = append(sourceOpts, source.WithSheet(cfg.DataSheet))
	}

	return []Option{
		WithDataPath(cfg.DataPath),
		WithBucketScheme(scheme),
		WithHistogramBins(cfg.HistogramBins),
		WithSourceOptions(sourceOpts...),
		WithRegistry(chart.DefaultRegistry(cfg.GeoSizeMax)),
	}, nil
}
