package exporter

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/hoopboard/internal/adapters/snapshot"
	"github.com/okian/hoopboard/internal/adapters/workbook"
	"github.com/okian/hoopboard/internal/domain/chart"
	"github.com/okian/hoopboard/internal/domain/prepared"
	"github.com/okian/hoopboard/pkg/logger"
	"github.com/okian/hoopboard/pkg/metrics"
)

// Renderer is the part of the dashboard service the chart export needs.
type Renderer interface {
	Charts() []chart.Entry
	Render(ctx context.Context, id string) (chart.Spec, error)
}

// Charts renders every registered chart in every configured format into
// cfg.OutDir as <id>.<ext>. Charts with nothing to draw are skipped. It
// returns the written paths in registry order.
func Charts(ctx context.Context, r Renderer, cfg ChartsConfig) ([]string, error) {
	if len(cfg.Formats) == 0 {
		return nil, fmt.Errorf("%w: no image format", ErrUsage)
	}
	if err := os.MkdirAll(cfg.OutDir, directoryPermission); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}

	// every spec is resolved before any file is written
	entries := r.Charts()
	specs := make([]chart.Spec, len(entries))
	for i, e := range entries {
		spec, err := r.Render(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrExport, e.ID, err)
		}
		specs[i] = spec
	}

	var sizeOpts []snapshot.Option
	if cfg.Width > 0 && cfg.Height > 0 {
		sizeOpts = append(sizeOpts, snapshot.WithSize(cfg.Width, cfg.Height))
	}

	var (
		mu      sync.Mutex
		written []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())

	for _, spec := range specs {
		for _, f := range cfg.Formats {
			path := filepath.Join(cfg.OutDir, spec.ID+"."+string(f))
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				err := writeChart(path, spec, f, sizeOpts)
				if errors.Is(err, snapshot.ErrNoData) {
					logger.Get().Warn(gctx, "chart skipped, nothing to draw", logger.String("chart", spec.ID))
					return nil
				}
				if err != nil {
					return err
				}
				mu.Lock()
				written = append(written, path)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	order := make(map[string]int, len(entries))
	for i, e := range entries {
		order[e.ID] = i
	}
	slices.SortFunc(written, func(a, b string) int {
		return cmp.Or(cmp.Compare(order[chartID(a)], order[chartID(b)]), strings.Compare(a, b))
	})
	return written, nil
}

func chartID(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

func writeChart(path string, spec chart.Spec, f snapshot.Format, opts []snapshot.Option) (err error) {
	begin := time.Now()
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrExport, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := snapshot.Render(file, spec, f, opts...); err != nil {
		if !errors.Is(err, snapshot.ErrNoData) {
			metrics.RecordChartRenderError(spec.ID, string(f))
		}
		return err
	}
	metrics.RecordChartRender(spec.ID, string(f), float64(time.Since(begin).Microseconds())/1000)
	return nil
}

// Workbook writes the aggregate workbook to path.
func Workbook(snap *prepared.Snapshot, path string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrExport, cerr)
		}
	}()

	if err := workbook.Write(file, snap); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}
