package api

import (
	"bytes"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/okian/hoopboard/internal/adapters/snapshot"
	"github.com/okian/hoopboard/internal/domain/chart"
	"github.com/okian/hoopboard/pkg/metrics"
)

// ChartsHandler serves chart listings, specs and static images.
type ChartsHandler struct {
	deps  Dependencies
	debug bool
}

// NewChartsHandler creates a new charts handler. With debug set, ?pretty=1
// indents spec responses.
func NewChartsHandler(deps Dependencies, debug bool) *ChartsHandler {
	return &ChartsHandler{deps: deps, debug: debug}
}

// chartInfo is one element of the chart listing.
type chartInfo struct {
	ID    string     `json:"id"`
	Kind  chart.Kind `json:"kind"`
	Title string     `json:"title"`
	Row   int        `json:"row"`
}

// HandleList handles GET /api/charts requests.
func (h *ChartsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if h.deps.Snapshot() == nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", ErrNotReady)
		return
	}

	entries := h.deps.Charts()
	out := make([]chartInfo, 0, len(entries))
	for _, e := range entries {
		spec, err := h.deps.Render(r.Context(), e.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "render_failed", err)
			return
		}
		out = append(out, chartInfo{ID: e.ID, Kind: spec.Kind, Title: spec.Title, Row: e.Row})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleSpec handles GET /api/charts/{id} requests.
func (h *ChartsHandler) HandleSpec(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.render(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	if h.debug && r.URL.Query().Get("pretty") == "1" {
		writeIndentedJSON(w, http.StatusOK, spec)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

// HandleImage handles GET /charts/{id}.png and /charts/{id}.svg requests.
func (h *ChartsHandler) HandleImage(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ext := path.Ext(file)
	id := strings.TrimSuffix(file, ext)

	format, err := snapshot.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil || id == "" {
		writeError(w, http.StatusBadRequest, "unknown_format", errors.Join(ErrBadRequest, err))
		return
	}

	spec, ok := h.render(w, r, id)
	if !ok {
		return
	}

	begin := time.Now()
	var buf bytes.Buffer
	if err := snapshot.Render(&buf, spec, format); err != nil {
		metrics.RecordChartRenderError(id, string(format))
		if errors.Is(err, snapshot.ErrNoData) {
			writeError(w, http.StatusUnprocessableEntity, "no_data", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "render_failed", err)
		return
	}
	metrics.RecordChartRender(id, string(format), float64(time.Since(begin).Microseconds())/1000)

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// render resolves one chart spec, writing the error response on failure.
func (h *ChartsHandler) render(w http.ResponseWriter, r *http.Request, id string) (chart.Spec, bool) {
	if h.deps.Snapshot() == nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", ErrNotReady)
		return chart.Spec{}, false
	}
	spec, err := h.deps.Render(r.Context(), id)
	switch {
	case errors.Is(err, chart.ErrUnknownChart):
		writeError(w, http.StatusNotFound, "unknown_chart", err)
		return chart.Spec{}, false
	case err != nil:
		writeError(w, http.StatusInternalServerError, "render_failed", err)
		return chart.Spec{}, false
	}
	return spec, true
}
