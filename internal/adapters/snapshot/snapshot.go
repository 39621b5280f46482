// Package snapshot renders chart specs to static PNG and SVG images.
package snapshot

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/okian/hoopboard/internal/domain/chart"
)

// Format is a static image format.
type Format string

// Supported formats.
const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Formats lists every supported format.
var Formats = []Format{PNG, SVG}

// Default image size in pixels.
const (
	DefaultWidth  = 900
	DefaultHeight = 500
)

// ParseFormat accepts "png" or "svg", case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

type options struct {
	width, height int
}

// Option configures rendering.
type Option func(*options)

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// Render draws spec to w in format f. PNG output uses gonum/plot, SVG
// output uses go-chart.
func Render(w io.Writer, spec chart.Spec, f Format, opt ...Option) error {
	o := options{width: DefaultWidth, height: DefaultHeight}
	for _, fn := range opt {
		fn(&o)
	}
	if !drawable(spec.Kind) {
		return fmt.Errorf("%w: %q for chart %s", ErrUnknownKind, spec.Kind, spec.ID)
	}
	if !hasData(spec) {
		return fmt.Errorf("%w: %s", ErrNoData, spec.ID)
	}

	var err error
	switch f {
	case PNG:
		err = renderPNG(w, spec, o)
	case SVG:
		err = renderSVG(w, spec, o)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("%w: %s as %s: %w", ErrRender, spec.ID, f, err)
	}
	return nil
}

func drawable(k chart.Kind) bool {
	switch k {
	case chart.KindBar, chart.KindHistogram, chart.KindPie, chart.KindLine, chart.KindScatterGeo:
		return true
	}
	return false
}

func hasData(spec chart.Spec) bool {
	switch spec.Kind {
	case chart.KindScatterGeo:
		return len(spec.Points) > 0
	case chart.KindLine:
		for _, v := range spec.Values {
			if finite(v) {
				return true
			}
		}
		return false
	case chart.KindPie:
		return total(spec.Values) > 0
	default:
		return len(spec.Values) > 0
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func total(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		if finite(v) && v > 0 {
			sum += v
		}
	}
	return sum
}

// shares converts counts to percentages of their total.
func shares(values []float64) []float64 {
	sum := total(values)
	out := make([]float64, len(values))
	for i, v := range values {
		if finite(v) && v > 0 {
			out[i] = v / sum * 100
		}
	}
	return out
}

// clean replaces missing values with zero for bar heights.
func clean(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if finite(v) {
			out[i] = v
		}
	}
	return out
}

// markerRadius scales the marker area with n; the largest marker has diameter sizeMax.
func markerRadius(n, maxN, sizeMax float64) float64 {
	if maxN <= 0 || sizeMax <= 0 {
		return 2
	}
	return math.Max(2, math.Sqrt(n/maxN)*sizeMax/2)
}
