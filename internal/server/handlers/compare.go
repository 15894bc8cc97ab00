package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/veritab/veritab/internal/cmd/output"
	"github.com/veritab/veritab/internal/server/response"
	"github.com/veritab/veritab/pkg/constants"
	"github.com/veritab/veritab/pkg/tabular"
)

// compareRequest is the POST /sessions/{id}/compare body. Columns
// applies to both sides; SourceColumns/TargetColumns override it when
// the sides name their key columns differently.
type compareRequest struct {
	Columns       []string `json:"columns,omitempty"`
	SourceColumns []string `json:"source_columns,omitempty"`
	TargetColumns []string `json:"target_columns,omitempty"`
	Dedupe        *bool    `json:"dedupe,omitempty"`
}

// HandlePreview handles GET /api/v1/sessions/{id}/preview. The side
// query parameter selects source (the default) or target; limit caps
// the returned rows.
func (h *Handlers) HandlePreview(w http.ResponseWriter, r *http.Request, sessionID string) {
	entry, err := h.sessions.Get(sessionID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var t *tabular.Table
	switch side := r.URL.Query().Get("side"); side {
	case "", "source":
		t, err = entry.Session.Source()
	case "target":
		t, err = entry.Session.Target()
	default:
		response.BadRequest(w, "Invalid side", "side must be source or target")
		return
	}
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	limit := constants.PreviewRowLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid limit", "limit must be an integer")
			return
		}
	}

	response.OK(w, output.NewPreview(t, limit))
}

// HandleCompare handles POST /api/v1/sessions/{id}/compare. The report
// is returned and retained for the export endpoint.
func (h *Handlers) HandleCompare(w http.ResponseWriter, r *http.Request, sessionID string) {
	entry, err := h.sessions.Get(sessionID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON request body", err.Error())
		return
	}

	sourceColumns, targetColumns := req.SourceColumns, req.TargetColumns
	if len(sourceColumns) == 0 {
		sourceColumns = req.Columns
	}
	if len(targetColumns) == 0 {
		targetColumns = req.Columns
	}
	if len(sourceColumns) == 0 || len(targetColumns) == 0 {
		response.BadRequest(w, "Missing key columns",
			`provide "columns", or "source_columns" and "target_columns"`)
		return
	}

	dedupe := true
	if req.Dedupe != nil {
		dedupe = *req.Dedupe
	}

	report, err := entry.Session.Compare(sourceColumns, targetColumns, dedupe)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	entry.SetReport(report)

	h.logger.Info().
		Str("session_id", sessionID).
		Int("missing", report.Summary.Missing).
		Int("extra", report.Summary.Extra).
		Msg("Comparison complete")
	response.OK(w, report)
}
