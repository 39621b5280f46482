// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/hoopboard/internal/domain/chart"
	"github.com/okian/hoopboard/internal/domain/prepared"
	"github.com/okian/hoopboard/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Charts lists the registered charts in page order.
	Charts() []chart.Entry
	// Render produces the spec of one chart; unknown ids wrap chart.ErrUnknownChart.
	Render(ctx context.Context, id string) (chart.Spec, error)
	// Snapshot returns the prepared data, nil until the data is loaded.
	Snapshot() *prepared.Snapshot
}

// Server wires HTTP routes for the dashboard.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	chartsHandler    *ChartsHandler
	exportHandler    *ExportHandler
	dashboardHandler *dashboardHandler

	logger logger.Logger
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	pageTitle  string
	assetsHost string
	debug      bool
	logger     logger.Logger
}

// WithPageTitle sets the dashboard heading and HTML title.
func WithPageTitle(title string) ServerOption {
	return func(c *serverConfig) {
		if title != "" {
			c.pageTitle = title
		}
	}
}

// WithAssetsHost serves the echarts scripts from host.
func WithAssetsHost(host string) ServerOption {
	return func(c *serverConfig) {
		c.assetsHost = host
	}
}

// WithDebug enables indented JSON via ?pretty=1.
func WithDebug(debug bool) ServerOption {
	return func(c *serverConfig) {
		c.debug = debug
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) ServerOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := serverConfig{pageTitle: DefaultPageTitle}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Get()
	}

	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		chartsHandler:    NewChartsHandler(deps, cfg.debug),
		exportHandler:    NewExportHandler(deps),
		dashboardHandler: newDashboardHandler(deps, cfg.pageTitle, cfg.assetsHost),
		logger:           cfg.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, MetricsMiddleware(RequestIDMiddleware(methodGET(h), s.logger), endpoint))
	}

	route("/{$}", "dashboard", s.dashboardHandler.HandleDashboard)
	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/metrics", "metrics", s.healthHandler.HandleMetrics)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/api/charts", "charts", s.chartsHandler.HandleList)
	route("/api/charts/{id}", "chart", s.chartsHandler.HandleSpec)
	route("/charts/{file}", "chart_image", s.chartsHandler.HandleImage)
	route("/export.xlsx", "export", s.exportHandler.HandleWorkbook)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeIndentedJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
