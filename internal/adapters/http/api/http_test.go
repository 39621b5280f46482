package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/okian/hoopboard/internal/adapters/http/api"
	service "github.com/okian/hoopboard/internal/app"
	"github.com/okian/hoopboard/internal/domain/chart"
	"github.com/okian/hoopboard/pkg/logger"
)

func init() {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
}

const players = `name,age,position,team,country,height,weight,salary,rating,BMI
Ann,24,G,Knicks,USA,200,98,4000000,77,24.5
Bo,29,C,Knicks,Lithuania,210,115,9000000,88,26.1
Cy,33,F,Heat,France,203,104,2000000,71,25.2
Di,21,G,Heat,USA,196,95,1000000,71,24.7
`

func newTestServer(t *testing.T, start bool, opts ...api.ServerOption) (*httptest.Server, *service.Service) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.csv")
	if err := os.WriteFile(path, []byte(players), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	svc := service.New(service.WithDataPath(path))
	if start {
		if err := svc.Start(context.Background()); err != nil {
			t.Fatalf("start: %v", err)
		}
	}

	mux := http.NewServeMux()
	api.NewServer(svc, svc, opts...).Register(context.Background(), mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(func() {
		ts.Close()
		svc.Stop()
	})
	return ts, svc
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func decodeError(body []byte) map[string]string {
	var out map[string]string
	_ = json.Unmarshal(body, &out)
	return out
}

func TestRegister_NilMux(t *testing.T) {
	Convey("Given a server", t, func() {
		s := api.NewServer(service.New(), service.New())

		Convey("When registering on a nil mux", func() {
			Convey("Then it should panic", func() {
				So(func() { s.Register(context.Background(), nil) }, ShouldPanic)
			})
		})
	})
}

func TestDashboardRoutes(t *testing.T) {
	Convey("Given a started dashboard server", t, func() {
		ts, _ := newTestServer(t, true, api.WithPageTitle("Test Board"))

		Convey("When requesting the page", func() {
			resp, body := get(t, ts.URL+"/")

			Convey("Then it should render every chart", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldStartWith, "text/html")
				So(resp.Header.Get(api.RequestIDHeader), ShouldNotBeEmpty)
				page := string(body)
				So(page, ShouldContainSubstring, "Test Board")
				for _, id := range []string{chart.IDAgeHistogram, chart.IDRatingsBar, chart.IDCountryMap, chart.IDBMILine} {
					So(page, ShouldContainSubstring, `id="`+strings.ReplaceAll(id, "-", "_")+`"`)
				}
			})
		})

		Convey("When listing charts", func() {
			resp, body := get(t, ts.URL+"/api/charts")
			var list []map[string]any
			So(json.Unmarshal(body, &list), ShouldBeNil)

			Convey("Then all nine charts should be listed in page order", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(list, ShouldHaveLength, 9)
				So(list[0]["id"], ShouldEqual, chart.IDAgeHistogram)
				So(list[0]["kind"], ShouldEqual, string(chart.KindHistogram))
				So(list[8]["id"], ShouldEqual, chart.IDBMILine)
				So(list[8]["row"], ShouldEqual, 2.0)
			})
		})

		Convey("When fetching one chart spec", func() {
			resp, body := get(t, ts.URL+"/api/charts/"+chart.IDRatingsBar)
			var spec map[string]any
			So(json.Unmarshal(body, &spec), ShouldBeNil)

			Convey("Then it should return the spec", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(spec["id"], ShouldEqual, chart.IDRatingsBar)
				So(spec["categories"], ShouldHaveLength, 7)
				So(string(body), ShouldNotContainSubstring, "\n  ")
			})
		})

		Convey("When fetching an unknown chart", func() {
			resp, body := get(t, ts.URL+"/api/charts/nope")

			Convey("Then it should return 404 unknown_chart", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
				So(decodeError(body)["code"], ShouldEqual, "unknown_chart")
			})
		})

		Convey("When fetching chart images", func() {
			png, pngBody := get(t, ts.URL+"/charts/"+chart.IDRatingsBar+".png")
			svg, svgBody := get(t, ts.URL+"/charts/"+chart.IDPositionPie+".svg")

			Convey("Then PNG and SVG should be served", func() {
				So(png.StatusCode, ShouldEqual, http.StatusOK)
				So(png.Header.Get("Content-Type"), ShouldEqual, "image/png")
				So(string(pngBody[:4]), ShouldEqual, "\x89PNG")
				So(svg.StatusCode, ShouldEqual, http.StatusOK)
				So(svg.Header.Get("Content-Type"), ShouldEqual, "image/svg+xml")
				So(string(svgBody), ShouldContainSubstring, "<svg")
			})
		})

		Convey("When fetching an image in an unknown format", func() {
			resp, body := get(t, ts.URL+"/charts/"+chart.IDRatingsBar+".gif")

			Convey("Then it should return 400 unknown_format", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(decodeError(body)["code"], ShouldEqual, "unknown_format")
			})
		})

		Convey("When fetching an image of an unknown chart", func() {
			resp, _ := get(t, ts.URL+"/charts/nope.png")

			Convey("Then it should return 404", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When exporting the workbook", func() {
			resp, body := get(t, ts.URL+"/export.xlsx")

			Convey("Then it should be a readable workbook", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Disposition"), ShouldContainSubstring, api.ExportFilename)
				f, err := excelize.OpenReader(strings.NewReader(string(body)))
				So(err, ShouldBeNil)
				defer f.Close()
				So(f.GetSheetList(), ShouldContain, "Team Averages")
			})
		})

		Convey("When checking health, stats and metrics", func() {
			health, healthBody := get(t, ts.URL+"/healthz")
			stats, statsBody := get(t, ts.URL+"/stats")
			m, metricsBody := get(t, ts.URL+"/metrics")

			Convey("Then each should answer", func() {
				So(health.StatusCode, ShouldEqual, http.StatusOK)
				So(decodeError(healthBody)["status"], ShouldEqual, "ok")

				var st map[string]any
				So(json.Unmarshal(statsBody, &st), ShouldBeNil)
				So(stats.StatusCode, ShouldEqual, http.StatusOK)
				So(st["records"], ShouldEqual, 4.0)

				So(m.StatusCode, ShouldEqual, http.StatusOK)
				So(string(metricsBody), ShouldContainSubstring, "hoopboard_dashboard_http_requests_total")
			})
		})

		Convey("When posting to a route", func() {
			resp, err := http.Post(ts.URL+"/api/charts", "application/json", strings.NewReader("{}"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should return 405", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
				So(resp.Header.Get("Allow"), ShouldEqual, "GET, HEAD")
			})
		})

		Convey("When the caller supplies a request id", func() {
			req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it should be echoed back", func() {
				So(resp.Header.Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})
	})
}

func TestDebugPrettySpec(t *testing.T) {
	Convey("Given a server in debug mode", t, func() {
		ts, _ := newTestServer(t, true, api.WithDebug(true))

		Convey("When asking for a pretty spec", func() {
			resp, body := get(t, ts.URL+"/api/charts/"+chart.IDHeightLine+"?pretty=1")

			Convey("Then the JSON should be indented", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(string(body), ShouldContainSubstring, "\n  \"id\"")
			})
		})
	})
}

func TestNotReady(t *testing.T) {
	Convey("Given a server whose data is not loaded", t, func() {
		ts, _ := newTestServer(t, false)

		Convey("When requesting data routes", func() {
			Convey("Then they should return 503 not_ready", func() {
				for _, p := range []string{"/", "/api/charts", "/api/charts/" + chart.IDRatingsBar, "/charts/ratings-bar.png", "/export.xlsx"} {
					resp, body := get(t, ts.URL+p)
					So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
					So(decodeError(body)["code"], ShouldEqual, "not_ready")
				}
			})
		})

		Convey("When requesting health", func() {
			resp, _ := get(t, ts.URL+"/healthz")
			Convey("Then it should still answer", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
