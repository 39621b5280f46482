package snapshot

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/okian/hoopboard/internal/domain/chart"
)

// gonum/plot rasterises at 96 dpi.
const pngDPI = 96

var (
	barColor    = color.RGBA{R: 0x63, G: 0x6e, B: 0xfa, A: 0xff}
	markerColor = color.RGBA{R: 0x21, G: 0x71, B: 0xb5, A: 0xc0}
)

func renderPNG(w io.Writer, spec chart.Spec, o options) error {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = spec.XTitle
	p.Y.Label.Text = spec.YTitle

	var err error
	switch spec.Kind {
	case chart.KindScatterGeo:
		err = geoPlot(p, spec)
	case chart.KindLine:
		err = linePlot(p, spec)
	case chart.KindPie:
		p.Y.Label.Text = "share (%)"
		err = barPlot(p, spec.Categories, shares(spec.Values), o.width)
	case chart.KindBar, chart.KindHistogram:
		err = barPlot(p, spec.Categories, clean(spec.Values), o.width)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(px(o.width), px(o.height), "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func px(n int) vg.Length {
	return vg.Length(n) * vg.Inch / pngDPI
}

func barPlot(p *plot.Plot, categories []string, values []float64, width int) error {
	barWidth := px(width) * 0.7 / vg.Length(math.Max(1, float64(len(values))))
	bars, err := plotter.NewBarChart(plotter.Values(values), barWidth)
	if err != nil {
		return err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(categories...)
	rotateTicks(p, len(categories))
	return nil
}

func linePlot(p *plot.Plot, spec chart.Spec) error {
	pts := make(plotter.XYs, 0, len(spec.Values))
	for i, v := range spec.Values {
		if finite(v) {
			pts = append(pts, plotter.XY{X: float64(i), Y: v})
		}
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = barColor
	points.Color = barColor
	p.Add(plotter.NewGrid(), line, points)
	p.NominalX(spec.Categories...)
	rotateTicks(p, len(spec.Categories))
	return nil
}

func geoPlot(p *plot.Plot, spec chart.Spec) error {
	pts := make(plotter.XYs, len(spec.Points))
	labels := make([]string, len(spec.Points))
	for i, gp := range spec.Points {
		pts[i] = plotter.XY{X: gp.Lon, Y: gp.Lat}
		labels[i] = gp.Name
	}
	maxN := spec.MaxValue()

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  markerColor,
			Radius: vg.Points(markerRadius(spec.Points[i].Value, maxN, spec.SizeMax)),
			Shape:  draw.CircleGlyph{},
		}
	}
	names, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return err
	}

	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"
	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -90, 90
	p.Add(plotter.NewGrid(), scatter, names)
	return nil
}

// rotateTicks tilts crowded category labels.
func rotateTicks(p *plot.Plot, n int) {
	if n <= 8 {
		return
	}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}
