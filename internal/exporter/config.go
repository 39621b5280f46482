package exporter

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/hoopboard/internal/adapters/snapshot"
)

// FormatBoth selects every image format.
const FormatBoth = "both"

// directoryPermission applies to created output directories.
const directoryPermission = 0o750

// filePermission applies to written exports.
const filePermission = 0o640

// ChartsConfig holds the parameters of a chart export.
type ChartsConfig struct {
	OutDir  string
	Formats []snapshot.Format
	Workers int
	Width   int
	Height  int
}

// ParseFormats maps the --format flag value to image formats.
func ParseFormats(s string) ([]snapshot.Format, error) {
	if strings.EqualFold(strings.TrimSpace(s), FormatBoth) {
		return snapshot.Formats, nil
	}
	f, err := snapshot.ParseFormat(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return []snapshot.Format{f}, nil
}

func (c *ChartsConfig) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
