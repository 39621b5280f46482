package api

import (
	"bytes"
	"net/http"

	"github.com/okian/hoopboard/internal/adapters/workbook"
)

// ExportFilename is the attachment name of the workbook download.
const ExportFilename = "hoopboard.xlsx"

// ExportHandler serves the aggregate tables as a workbook.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleWorkbook handles GET /export.xlsx requests.
func (h *ExportHandler) HandleWorkbook(w http.ResponseWriter, _ *http.Request) {
	snap := h.deps.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", ErrNotReady)
		return
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf, snap); err != nil {
		writeError(w, http.StatusInternalServerError, "export_failed", err)
		return
	}
	w.Header().Set("Content-Type", workbook.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
