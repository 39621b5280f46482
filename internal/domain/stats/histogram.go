package stats

import (
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin is one equal-width histogram bin. Bins are [Lower, Upper) except the
// last, which also holds Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	N     int     `json:"count"`
}

// Label renders the bin range, e.g. "19.5-21".
func (b Bin) Label() string {
	return trim(b.Lower) + "-" + trim(b.Upper)
}

func trim(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// AgeHistogram splits [min(ages), max(ages)] into bins equal-width bins.
// A single distinct age is widened to [age-0.5, age+0.5]. It returns nil for
// no ages or a non-positive bin count.
func AgeHistogram(ages []int, bins int) []Bin {
	if len(ages) == 0 || bins <= 0 {
		return nil
	}
	x := make([]float64, len(ages))
	for i, a := range ages {
		x[i] = float64(a)
	}
	slices.Sort(x)

	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram treats the last divider as exclusive; nudge it so max lands in the last bin.
	upper := dividers[bins]
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lower: dividers[i], Upper: dividers[i+1], N: int(counts[i])}
	}
	out[bins-1].Upper = upper
	return out
}
