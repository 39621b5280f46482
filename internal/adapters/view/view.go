// Package view turns chart specs into go-echarts figures and the dashboard page.
package view

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/okian/hoopboard/internal/domain/chart"
)

const (
	defaultHeight = "420px"
	pageWidthVW   = 96
)

// countColors is the sequential scale used for the country markers.
var countColors = []string{"#c6dbef", "#6baed6", "#2171b5", "#08306b"}

type options struct {
	assetsHost string
	height     string
}

// Option configures page rendering.
type Option func(*options)

// WithAssetsHost serves the echarts scripts and maps from host instead of the public CDN.
func WithAssetsHost(host string) Option {
	return func(o *options) {
		if host != "" {
			o.assetsHost = host
		}
	}
}

// WithHeight sets the height of every chart, e.g. "360px".
func WithHeight(h string) Option {
	return func(o *options) {
		if h != "" {
			o.height = h
		}
	}
}

// ElementID is the DOM id of a chart; echarts also uses it as a JS identifier.
func ElementID(chartID string) string {
	return strings.ReplaceAll(chartID, "-", "_")
}

// NewPage lays the specs out row by row in a flex page. It fails on the
// first spec whose kind has no figure.
func NewPage(title string, rows [][]chart.Spec, opt ...Option) (*components.Page, error) {
	o := options{height: defaultHeight}
	for _, fn := range opt {
		fn(&o)
	}

	page := components.NewPage()
	page.SetPageTitle(title)
	page.SetLayout(components.PageFlexLayout)
	if o.assetsHost != "" {
		page.SetAssetsHost(o.assetsHost)
	}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		width := fmt.Sprintf("%dvw", pageWidthVW/len(row))
		for _, spec := range row {
			fig, err := Figure(spec, opts.Initialization{
				ChartID:    ElementID(spec.ID),
				Width:      width,
				Height:     o.height,
				PageTitle:  title,
				AssetsHost: o.assetsHost,
			})
			if err != nil {
				return nil, err
			}
			page.AddCharts(fig)
		}
	}
	return page, nil
}

// Render writes the full dashboard page.
func Render(w io.Writer, title string, rows [][]chart.Spec, opt ...Option) error {
	page, err := NewPage(title, rows, opt...)
	if err != nil {
		return err
	}
	return page.Render(w)
}

// Figure builds the echarts chart for one spec.
func Figure(spec chart.Spec, initOpts opts.Initialization) (components.Charter, error) {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}

	switch spec.Kind {
	case chart.KindHistogram, chart.KindBar:
		return barFigure(spec, global), nil
	case chart.KindPie:
		return pieFigure(spec, global), nil
	case chart.KindLine:
		return lineFigure(spec, global), nil
	case chart.KindScatterGeo:
		return geoFigure(spec, global), nil
	}
	return nil, fmt.Errorf("%w: %q for chart %s", ErrUnknownKind, spec.Kind, spec.ID)
}

func axes(spec chart.Spec) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Name: spec.XTitle, NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YTitle}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	}
}

func barFigure(spec chart.Spec, global []charts.GlobalOpts) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(global, axes(spec)...)...)

	data := make([]opts.BarData, len(spec.Values))
	for i, v := range spec.Values {
		data[i] = opts.BarData{Value: value(v)}
	}
	series := []charts.SeriesOpts{}
	if spec.Kind == chart.KindHistogram {
		series = append(series, charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "1%"}))
	}
	bar.SetXAxis(spec.Categories).AddSeries(spec.Title, data, series...)
	return bar
}

func lineFigure(spec chart.Spec, global []charts.GlobalOpts) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(global, axes(spec)...)...)

	data := make([]opts.LineData, len(spec.Values))
	for i, v := range spec.Values {
		data[i] = opts.LineData{Value: value(v)}
	}
	line.SetXAxis(spec.Categories).AddSeries(spec.YTitle, data)
	return line
}

func pieFigure(spec chart.Spec, global []charts.GlobalOpts) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(global...)

	data := make([]opts.PieData, len(spec.Values))
	for i, v := range spec.Values {
		data[i] = opts.PieData{Name: spec.Categories[i], Value: value(v)}
	}
	pie.AddSeries(spec.Title, data, charts.WithPieChartOpts(opts.PieChart{Radius: "60%"}))
	return pie
}

func geoFigure(spec chart.Spec, global []charts.GlobalOpts) *charts.Geo {
	geo := charts.NewGeo()
	maxN := spec.MaxValue()
	if maxN <= 0 {
		maxN = 1
	}
	geo.SetGlobalOptions(append(global,
		charts.WithGeoComponentOpts(opts.GeoComponent{Map: "world"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxN),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: countColors},
		}),
	)...)

	data := make([]opts.GeoData, len(spec.Points))
	for i, p := range spec.Points {
		data[i] = opts.GeoData{Name: p.Name, Value: []float64{p.Lon, p.Lat, p.Value}}
	}
	geo.AddSeries(spec.Title, types.ChartScatter, data,
		charts.WithScatterChartOpts(opts.ScatterChart{
			CoordSystem: types.ChartGeo,
			SymbolSize:  opts.FuncOpts(symbolSize(spec.SizeMax, maxN)),
		}),
	)
	return geo
}

// symbolSize scales marker area with the player count, largest marker sizeMax.
func symbolSize(sizeMax, maxN float64) string {
	return fmt.Sprintf("function (val) { return Math.max(4, Math.sqrt(val[2] / %g) * %g); }", maxN, sizeMax)
}

// value maps missing numbers to echarts' empty marker.
func value(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return v
}
