// Package chart defines the declarative chart description and the explicit
// registry that maps each chart id to the pure function producing it.
package chart

import (
	"encoding/json"
	"math"

	"github.com/okian/hoopboard/internal/domain/prepared"
)

// Kind is the chart type.
type Kind string

// Chart kinds.
const (
	KindHistogram  Kind = "histogram"
	KindBar        Kind = "bar"
	KindPie        Kind = "pie"
	KindLine       Kind = "line"
	KindScatterGeo Kind = "scatter-geo"
)

// GeoPoint is one marker on a scatter-geo chart. Value drives size and colour.
type GeoPoint struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value float64 `json:"value"`
}

// Spec describes one chart. Categorical charts use Categories and Values of
// equal length; scatter-geo charts use Points.
type Spec struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	Title      string     `json:"title"`
	XTitle     string     `json:"xTitle,omitempty"`
	YTitle     string     `json:"yTitle,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Values     []float64  `json:"values,omitempty"`
	Points     []GeoPoint `json:"points,omitempty"`
	SizeMax    float64    `json:"sizeMax,omitempty"`
	Projection string     `json:"projection,omitempty"`
}

// MarshalJSON encodes missing values (NaN) as null.
func (s Spec) MarshalJSON() ([]byte, error) {
	type plain Spec
	out := struct {
		plain
		Values []*float64 `json:"values,omitempty"`
	}{plain: plain(s)}
	if s.Values != nil {
		out.Values = make([]*float64, len(s.Values))
		for i := range s.Values {
			if math.IsNaN(s.Values[i]) || math.IsInf(s.Values[i], 0) {
				continue
			}
			v := s.Values[i]
			out.Values[i] = &v
		}
	}
	return json.Marshal(out)
}

// MaxValue returns the largest finite value, or 0.
func (s Spec) MaxValue() float64 {
	m := 0.0
	for _, v := range s.Values {
		if !math.IsNaN(v) && v > m {
			m = v
		}
	}
	for _, p := range s.Points {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

// Renderer maps the prepared snapshot to one chart. Renderers must not
// mutate the snapshot and must return the same Spec on every call.
type Renderer func(s *prepared.Snapshot) Spec
