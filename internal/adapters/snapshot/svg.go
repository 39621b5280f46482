package snapshot

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/hoopboard/internal/domain/chart"
)

var (
	seriesColor = drawing.ColorFromHex("636efa")
	dotColor    = drawing.ColorFromHex("2171b5").WithAlpha(192)
)

func renderSVG(w io.Writer, spec chart.Spec, o options) error {
	switch spec.Kind {
	case chart.KindPie:
		return pieSVG(w, spec, o)
	case chart.KindLine:
		return lineSVG(w, spec, o)
	case chart.KindScatterGeo:
		return geoSVG(w, spec, o)
	case chart.KindBar, chart.KindHistogram:
		return barSVG(w, spec, o)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
}

func titled() gochart.Style {
	return gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}}
}

func barSVG(w io.Writer, spec chart.Spec, o options) error {
	values := clean(spec.Values)
	bars := make([]gochart.Value, len(values))
	top := 1.0
	for i, v := range values {
		bars[i] = gochart.Value{Value: v, Label: spec.Categories[i], Style: gochart.Style{FillColor: seriesColor, StrokeColor: seriesColor}}
		top = math.Max(top, v)
	}
	bc := gochart.BarChart{
		Title:      spec.Title,
		Width:      o.width,
		Height:     o.height,
		Background: titled(),
		BarWidth:   int(float64(o.width) * 0.7 / float64(len(bars))),
		YAxis: gochart.YAxis{
			Name:  spec.YTitle,
			Range: &gochart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}
	return bc.Render(gochart.SVG, w)
}

func pieSVG(w io.Writer, spec chart.Spec, o options) error {
	values := make([]gochart.Value, len(spec.Values))
	for i, v := range clean(spec.Values) {
		values[i] = gochart.Value{Value: v, Label: spec.Categories[i]}
	}
	pc := gochart.PieChart{
		Title:      spec.Title,
		Width:      o.width,
		Height:     o.height,
		Background: titled(),
		Values:     values,
	}
	return pc.Render(gochart.SVG, w)
}

func lineSVG(w io.Writer, spec chart.Spec, o options) error {
	var xs, ys []float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range spec.Values {
		if !finite(v) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	// go-chart takes the x range from the ticks; blank edge ticks pad it by half a slot
	n := float64(len(spec.Categories))
	ticks := []gochart.Tick{{Value: -0.5}}
	for i, c := range spec.Categories {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: c})
	}
	ticks = append(ticks, gochart.Tick{Value: n - 0.5})
	ch := gochart.Chart{
		Title:      spec.Title,
		Width:      o.width,
		Height:     o.height,
		Background: titled(),
		XAxis: gochart.XAxis{
			Name:  spec.XTitle,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: n - 0.5},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  spec.YTitle,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.YTitle,
				XValues: xs,
				YValues: ys,
				Style:   gochart.Style{StrokeColor: seriesColor, StrokeWidth: 2, DotColor: seriesColor, DotWidth: 3},
			},
		},
	}
	return ch.Render(gochart.SVG, w)
}

func geoSVG(w io.Writer, spec chart.Spec, o options) error {
	xs := make([]float64, len(spec.Points))
	ys := make([]float64, len(spec.Points))
	for i, p := range spec.Points {
		xs[i], ys[i] = p.Lon, p.Lat
	}
	maxN := spec.MaxValue()

	ch := gochart.Chart{
		Title:      spec.Title,
		Width:      o.width,
		Height:     o.height,
		Background: titled(),
		XAxis: gochart.XAxis{
			Name:  "longitude",
			Range: &gochart.ContinuousRange{Min: -180, Max: 180},
		},
		YAxis: gochart.YAxis{
			Name:  "latitude",
			Range: &gochart.ContinuousRange{Min: -90, Max: 90},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotColor:    dotColor,
					DotWidthProvider: func(_, _ gochart.Range, i int, _, _ float64) float64 {
						return markerRadius(spec.Points[i].Value, maxN, spec.SizeMax)
					},
				},
			},
		},
	}
	return ch.Render(gochart.SVG, w)
}
