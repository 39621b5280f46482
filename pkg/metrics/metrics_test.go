package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should register under the hoopboard namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.RecordDatasetLoaded(DatasetStats{Rows: 3})
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				found := false
				for _, f := range families {
					if f.GetName() == "hoopboard_dashboard_dataset_rows" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"dataset": "players"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metric names and labels should follow the options", func() {
				manager.RecordDatasetLoaded(DatasetStats{Rows: 10, Teams: 2})
				So(testutil.ToFloat64(manager.datasetRows), ShouldEqual, 10)
				So(testutil.ToFloat64(manager.datasetTeams), ShouldEqual, 2)

				expected := `
# HELP test_unit_dataset_teams Number of distinct teams in the team aggregate
# TYPE test_unit_dataset_teams gauge
test_unit_dataset_teams{dataset="players"} 2
`
				So(testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_unit_dataset_teams"), ShouldBeNil)
			})
		})

		Convey("When the same registry is reused", func() {
			registry := prometheus.NewRegistry()
			_ = NewManager(WithPrometheusRegistry(registry))

			Convey("Then registering again should panic on duplicate collectors", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording dataset metrics", func() {
			RecordDatasetLoaded(DatasetStats{Rows: 450, Teams: 30, Unbucketed: 2, Unlocated: 1, LoadMs: 12.5, LoadedUnix: 1700000000})
			RecordDatasetLoadFailure("missing_column")

			Convey("Then the gauges should reflect the stats", func() {
				So(testutil.ToFloat64(globalManager.datasetRows), ShouldEqual, 450)
				So(testutil.ToFloat64(globalManager.datasetUnbucketed), ShouldEqual, 2)
				So(testutil.ToFloat64(globalManager.datasetUnlocated), ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.datasetLoadFailures.WithLabelValues("missing_column")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording chart renders", func() {
			before := testutil.ToFloat64(globalManager.chartRenders.WithLabelValues("age-histogram", "json"))
			RecordChartRender("age-histogram", "json", 0.4)
			RecordChartRenderError("country-map", "png")

			Convey("Then the counters should increase", func() {
				So(testutil.ToFloat64(globalManager.chartRenders.WithLabelValues("age-histogram", "json")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.chartRenderErrors.WithLabelValues("country-map", "png")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					RecordHTTPRequest("charts", "GET", "200")
					RecordHTTPRequestDuration("charts", "GET", "200", 3.0)
					RecordErrorByType("not_found", "medium")
					RecordErrorByEndpoint("charts", "GET", "not_found")
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When asking for the registry", func() {
			Convey("Then it should return the custom registry", func() {
				So(GetRegistry(), ShouldEqual, customRegistry)
			})
		})
	})
}
