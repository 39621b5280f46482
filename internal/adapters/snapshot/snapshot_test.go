package snapshot

import (
	"bytes"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/hoopboard/internal/domain/chart"
)

func specs() []chart.Spec {
	return []chart.Spec{
		{ID: chart.IDAgeHistogram, Kind: chart.KindHistogram, Title: "Histogram of Age", XTitle: "age", YTitle: "count", Categories: []string{"19-21", "21-23", "23-25"}, Values: []float64{2, 5, 1}},
		{ID: chart.IDRatingsBar, Kind: chart.KindBar, Title: "Player Ratings", Categories: []string{"65-69", "70-74"}, Values: []float64{0, 0}},
		{ID: chart.IDPositionPie, Kind: chart.KindPie, Title: "Player Positions", Categories: []string{"G", "C", "F"}, Values: []float64{4, 1, 2}},
		{ID: chart.IDSalaryLine, Kind: chart.KindLine, Title: "Average Salary by Team", XTitle: "Team", YTitle: "salary", Categories: []string{"Heat", "Knicks", "Nets"}, Values: []float64{1e6, math.NaN(), 3e6}},
		{ID: chart.IDBMILine, Kind: chart.KindLine, Title: "Average BMI by Team", XTitle: "Team", YTitle: "BMI", Categories: []string{"Heat"}, Values: []float64{24.2}},
		{ID: chart.IDCountryMap, Kind: chart.KindScatterGeo, Title: "Player Distribution by Country", SizeMax: 40, Points: []chart.GeoPoint{
			{Name: "USA", Lat: 39.8, Lon: -98.6, Value: 12},
			{Name: "France", Lat: 46.2, Lon: 2.2, Value: 3},
		}},
	}
}

func TestParseFormat(t *testing.T) {
	Convey("Given format names", t, func() {
		f, err := ParseFormat("PNG")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, PNG)
		So(f.ContentType(), ShouldEqual, "image/png")

		f, err = ParseFormat("svg")
		So(err, ShouldBeNil)
		So(f.ContentType(), ShouldEqual, "image/svg+xml")

		_, err = ParseFormat("gif")
		So(errors.Is(err, ErrUnknownFormat), ShouldBeTrue)
	})
}

func TestRender(t *testing.T) {
	Convey("Given a spec of every kind", t, func() {
		for _, spec := range specs() {
			Convey("When rendering "+spec.ID+" as PNG", func() {
				var buf bytes.Buffer
				err := Render(&buf, spec, PNG, WithSize(640, 360))
				Convey("Then a PNG image should be written", func() {
					So(err, ShouldBeNil)
					So(bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), ShouldBeTrue)
				})
			})

			Convey("When rendering "+spec.ID+" as SVG", func() {
				var buf bytes.Buffer
				err := Render(&buf, spec, SVG)
				Convey("Then an SVG document should be written", func() {
					So(err, ShouldBeNil)
					So(buf.String(), ShouldContainSubstring, "<svg")
				})
			})
		}
	})

	Convey("Given specs with nothing to draw", t, func() {
		empty := []chart.Spec{
			{ID: "no-points", Kind: chart.KindScatterGeo},
			{ID: "all-missing", Kind: chart.KindLine, Categories: []string{"Heat"}, Values: []float64{math.NaN()}},
			{ID: "zero-pie", Kind: chart.KindPie, Categories: []string{"G"}, Values: []float64{0}},
			{ID: "no-bars", Kind: chart.KindBar},
		}

		Convey("Then rendering should fail with ErrNoData", func() {
			for _, spec := range empty {
				err := Render(&bytes.Buffer{}, spec, SVG)
				So(errors.Is(err, ErrNoData), ShouldBeTrue)
			}
		})
	})

	Convey("Given a spec of an unknown kind", t, func() {
		spec := chart.Spec{ID: "radar", Kind: chart.Kind("radar"), Categories: []string{"A"}, Values: []float64{1}}

		Convey("Then both formats should reject it with ErrUnknownKind", func() {
			for _, f := range Formats {
				var buf bytes.Buffer
				err := Render(&buf, spec, f)
				So(errors.Is(err, ErrUnknownKind), ShouldBeTrue)
				So(buf.Len(), ShouldEqual, 0)
			}
		})
	})

	Convey("Given an unknown format", t, func() {
		err := Render(&bytes.Buffer{}, specs()[0], Format("gif"))
		Convey("Then rendering should fail with ErrUnknownFormat", func() {
			So(errors.Is(err, ErrUnknownFormat), ShouldBeTrue)
		})
	})
}

func TestHelpers(t *testing.T) {
	Convey("Given count values", t, func() {
		So(shares([]float64{1, 3}), ShouldResemble, []float64{25, 75})
		So(clean([]float64{math.NaN(), 2}), ShouldResemble, []float64{0, 2})
		So(markerRadius(12, 12, 40), ShouldEqual, 20)
		So(markerRadius(0, 12, 40), ShouldEqual, 2)
	})
}
