package stats

import (
	"github.com/okian/hoopboard/internal/domain/bucket"
)

// RatingCounts returns every interval of scheme in lower-bound order with the
// number of ratings falling in it. Empty intervals are kept with a zero count;
// unbucketed ratings are not counted anywhere.
func RatingCounts(scheme bucket.Scheme, ratings []float64) []Count {
	labels := scheme.Labels()
	out := make([]Count, len(labels))
	for i, l := range labels {
		out[i].Label = l
	}
	for _, r := range ratings {
		if i, ok := scheme.Index(r); ok {
			out[i].N++
		}
	}
	return out
}

// Unbucketed returns how many ratings fall outside every interval.
func Unbucketed(scheme bucket.Scheme, ratings []float64) int {
	n := 0
	for _, r := range ratings {
		if _, ok := scheme.Index(r); !ok {
			n++
		}
	}
	return n
}
