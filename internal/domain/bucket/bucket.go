// Package bucket partitions the rating axis into fixed-width, left-inclusive intervals.
package bucket

import (
	"fmt"
	"math"
)

// Scheme describes contiguous intervals [Start, Start+Width), ..., [End-Width, End).
// It is fixed by configuration and never derived from data.
type Scheme struct {
	start int
	end   int
	width int
}

// Default is the rating scheme 65-69, 70-74, ..., 95-99.
var Default = Scheme{start: 65, end: 100, width: 5}

// NewScheme validates and returns a Scheme.
func NewScheme(start, end, width int) (Scheme, error) {
	switch {
	case width <= 0:
		return Scheme{}, fmt.Errorf("%w: width %d must be positive", ErrInvalidScheme, width)
	case end <= start:
		return Scheme{}, fmt.Errorf("%w: end %d must exceed start %d", ErrInvalidScheme, end, start)
	case (end-start)%width != 0:
		return Scheme{}, fmt.Errorf("%w: range %d-%d is not a multiple of width %d", ErrInvalidScheme, start, end, width)
	}
	return Scheme{start: start, end: end, width: width}, nil
}

// Start returns the inclusive lower bound of the first interval.
func (s Scheme) Start() int { return s.start }

// End returns the exclusive upper bound of the last interval.
func (s Scheme) End() int { return s.end }

// Width returns the interval width.
func (s Scheme) Width() int { return s.width }

// Len returns the number of intervals.
func (s Scheme) Len() int { return (s.end - s.start) / s.width }

// Edges returns the bin edges, e.g. 65, 70, ..., 100.
func (s Scheme) Edges() []int {
	edges := make([]int, 0, s.Len()+1)
	for e := s.start; e <= s.end; e += s.width {
		edges = append(edges, e)
	}
	return edges
}

// Labels returns every interval label in lower-bound order.
func (s Scheme) Labels() []string {
	labels := make([]string, s.Len())
	for i := range labels {
		labels[i] = s.labelAt(i)
	}
	return labels
}

func (s Scheme) labelAt(i int) string {
	lo := s.start + i*s.width
	return fmt.Sprintf("%d-%d", lo, lo+s.width-1)
}

// Index returns the interval index holding v. ok is false for NaN and for
// values outside [Start, End).
func (s Scheme) Index(v float64) (int, bool) {
	if math.IsNaN(v) || v < float64(s.start) || v >= float64(s.end) {
		return 0, false
	}
	i := int(math.Floor((v - float64(s.start)) / float64(s.width)))
	// guards float rounding just below End
	if i >= s.Len() {
		i = s.Len() - 1
	}
	return i, true
}

// Label returns the interval label for v, or "" and false when v is unbucketed.
func (s Scheme) Label(v float64) (string, bool) {
	i, ok := s.Index(v)
	if !ok {
		return "", false
	}
	return s.labelAt(i), true
}

// Assign labels every value; unbucketed values get "".
func (s Scheme) Assign(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i], _ = s.Label(v)
	}
	return out
}
