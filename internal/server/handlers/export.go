package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/veritab/veritab/internal/server/response"
	"github.com/veritab/veritab/pkg/constants"
	"github.com/veritab/veritab/pkg/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleExport handles GET /api/v1/sessions/{id}/export, streaming the
// latest comparison report as an .xlsx workbook.
func (h *Handlers) HandleExport(w http.ResponseWriter, _ *http.Request, sessionID string) {
	entry, err := h.sessions.Get(sessionID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	report := entry.Report()
	if report == nil {
		response.BadRequest(w, "No comparison to export",
			"run the comparison first, then download the workbook")
		return
	}

	filename := fmt.Sprintf("veritab-report-%s.xlsx", time.Now().Format(constants.TimeFormatFilename))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	// Headers are sent once writing starts; failures can only be logged.
	if err := export.WriteWorkbook(w, report); err != nil {
		h.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("Failed to stream workbook")
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Str("filename", filename).
		Msg("Workbook exported")
}
