// Package service loads the player table once, prepares every derived table
// and serves chart specs from the resulting immutable snapshot.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/okian/hoopboard/internal/adapters/source"
	"github.com/okian/hoopboard/internal/domain/bucket"
	"github.com/okian/hoopboard/internal/domain/chart"
	"github.com/okian/hoopboard/internal/domain/geo"
	"github.com/okian/hoopboard/internal/domain/prepared"
	"github.com/okian/hoopboard/pkg/logger"
	"github.com/okian/hoopboard/pkg/metrics"
)

// Service owns the dashboard snapshot and the chart registry.
type Service struct {
	mu sync.RWMutex

	// Configuration
	dataPath      string
	scheme        bucket.Scheme
	histogramBins int
	sourceOpts    []source.Option
	registry      *chart.Registry
	locator       *geo.Locator

	// State
	started  bool
	snapshot *prepared.Snapshot
	loadTook time.Duration
	loadedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataPath sets the input file. The extension picks the loader.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithBucketScheme sets the rating interval scheme.
func WithBucketScheme(scheme bucket.Scheme) Option {
	return func(s *Service) {
		if scheme.Len() > 0 {
			s.scheme = scheme
		}
	}
}

// WithHistogramBins sets the number of age histogram bins.
func WithHistogramBins(bins int) Option {
	return func(s *Service) {
		if bins > 0 {
			s.histogramBins = bins
		}
	}
}

// WithSourceOptions passes loader options such as the sheet or table name.
func WithSourceOptions(opts ...source.Option) Option {
	return func(s *Service) {
		s.sourceOpts = append(s.sourceOpts, opts...)
	}
}

// WithRegistry replaces the default chart registry.
func WithRegistry(r *chart.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithLocator replaces the embedded country table.
func WithLocator(l *geo.Locator) Option {
	return func(s *Service) {
		if l != nil {
			s.locator = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:      "data.csv",
		scheme:        bucket.Default,
		histogramBins: prepared.DefaultHistogramBins,
		registry:      chart.DefaultRegistry(chart.DefaultSizeMax),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset and builds the snapshot. A failure leaves the
// service stopped; calling Start on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "loading dataset", logger.String("path", s.dataPath))
	begin := time.Now()

	snap, err := s.prepare(ctx)
	if err != nil {
		reason := failureReason(err)
		metrics.RecordDatasetLoadFailure(reason)
		s.logger.Error(ctx, "dataset load failed",
			logger.String("path", s.dataPath),
			logger.String("reason", reason),
			logger.Error(err),
		)
		return err
	}

	s.snapshot = snap
	s.loadTook = time.Since(begin)
	s.loadedAt = time.Now()
	s.started = true

	metrics.RecordDatasetLoaded(metrics.DatasetStats{
		Rows:       snap.Dataset().Len(),
		Teams:      len(snap.Teams()),
		Unbucketed: snap.Unbucketed(),
		Unlocated:  len(snap.Unlocated()),
		LoadMs:     float64(s.loadTook.Microseconds()) / 1000,
		LoadedUnix: s.loadedAt.Unix(),
	})
	if unlocated := snap.Unlocated(); len(unlocated) > 0 {
		s.logger.Warn(ctx, "countries missing from the map",
			logger.Int("count", len(unlocated)),
			logger.Any("countries", unlocated),
		)
	}
	s.logger.Info(ctx, "dashboard data ready",
		logger.Int("records", snap.Dataset().Len()),
		logger.Int("teams", len(snap.Teams())),
		logger.Int("unbucketed", snap.Unbucketed()),
		logger.Duration("took", s.loadTook),
	)
	return nil
}

func (s *Service) prepare(ctx context.Context) (*prepared.Snapshot, error) {
	ds, err := source.Load(ctx, s.dataPath, s.sourceOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	locator := s.locator
	if locator == nil {
		if locator, err = geo.Default(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
	}

	snap, err := prepared.Build(ds, prepared.Options{
		Scheme:        s.scheme,
		HistogramBins: s.histogramBins,
		Locator:       locator,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return snap, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "not_found"
	case errors.Is(err, source.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, source.ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, source.ErrEmptyDataset):
		return "empty"
	case errors.Is(err, source.ErrMalformed):
		return "malformed"
	case errors.Is(err, prepared.ErrPrepare):
		return "prepare"
	default:
		return "other"
	}
}

// Stop marks the service stopped. The snapshot is released.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.snapshot = nil
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Snapshot returns the prepared data, or nil before Start.
func (s *Service) Snapshot() *prepared.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Registry returns the chart registry.
func (s *Service) Registry() *chart.Registry {
	return s.registry
}

// Charts lists the registered charts in page order.
func (s *Service) Charts() []chart.Entry {
	return s.registry.Entries()
}

// Render produces the spec of one chart.
func (s *Service) Render(ctx context.Context, id string) (chart.Spec, error) {
	snap := s.Snapshot()
	if snap == nil {
		return chart.Spec{}, ErrNotStarted
	}

	begin := time.Now()
	spec, err := s.registry.Render(id, snap)
	if err != nil {
		return chart.Spec{}, err
	}
	metrics.RecordChartRender(id, "spec", float64(time.Since(begin).Microseconds())/1000)
	s.logger.Debug(ctx, "chart rendered", logger.String("chart", id))
	return spec, nil
}

// GetStats returns dataset statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":  s.started,
		"dataPath": s.dataPath,
		"charts":   len(s.registry.Entries()),
	}
	if s.started {
		snap := s.snapshot
		records := snap.Dataset().Len()
		stats["records"] = records
		stats["teams"] = len(snap.Teams())
		stats["bucketed"] = records - snap.Unbucketed()
		stats["unbucketed"] = snap.Unbucketed()
		stats["unlocatedCountries"] = snap.Unlocated()
		stats["loadMs"] = float64(s.loadTook.Microseconds()) / 1000
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
	}
	return stats
}
