package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/okian/hoopboard/internal/adapters/view"
	"github.com/okian/hoopboard/internal/domain/chart"
)

// DefaultPageTitle is the dashboard heading used when none is configured.
const DefaultPageTitle = "NBA PLAYERS DASHBOARD"

// dashboardHandler renders the chart page.
type dashboardHandler struct {
	deps       Dependencies
	title      string
	assetsHost string
}

func newDashboardHandler(deps Dependencies, title, assetsHost string) *dashboardHandler {
	return &dashboardHandler{deps: deps, title: title, assetsHost: assetsHost}
}

// HandleDashboard handles GET / requests.
// Returns one HTML page with every registered chart laid out in rows.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if h.deps.Snapshot() == nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", ErrNotReady)
		return
	}

	var rows [][]chart.Spec
	last := -1
	for _, e := range h.deps.Charts() {
		spec, err := h.deps.Render(r.Context(), e.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "render_failed", err)
			return
		}
		if len(rows) == 0 || e.Row != last {
			rows = append(rows, nil)
			last = e.Row
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], spec)
	}

	var opts []view.Option
	if h.assetsHost != "" {
		opts = append(opts, view.WithAssetsHost(h.assetsHost))
	}

	// rendered into a buffer so a failure still yields a JSON error
	var buf bytes.Buffer
	if err := view.Render(&buf, h.title, rows, opts...); err != nil {
		writeError(w, http.StatusInternalServerError, "render_failed", fmt.Errorf("dashboard page: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
