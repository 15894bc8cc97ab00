package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/veritab/veritab/internal/server/response"
	"github.com/veritab/veritab/pkg/constants"
)

// targetQueryRequest is the JSON body for loading the target side from
// a reference database query.
type targetQueryRequest struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
	Query  string `json:"query"`
}

// HandleLoadSource handles POST /api/v1/sessions/{id}/source. The body
// is a multipart form with the table under the "file" field; the
// uploaded filename selects the parser.
func (h *Handlers) HandleLoadSource(w http.ResponseWriter, r *http.Request, sessionID string) {
	entry, err := h.sessions.Get(sessionID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	file, name, ok := h.uploadedFile(w, r)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	t, err := entry.Session.LoadSourceReader(file, name)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	entry.SetReport(nil)

	h.logger.Debug().
		Str("session_id", sessionID).
		Str("table", t.Label()).
		Int("rows", t.NumRows()).
		Msg("Source table loaded")
	response.OK(w, newTableView(t))
}

// HandleLoadTarget handles POST /api/v1/sessions/{id}/target. A
// multipart body loads the target from an uploaded file; a JSON body
// runs a query against the reference database.
func (h *Handlers) HandleLoadTarget(w http.ResponseWriter, r *http.Request, sessionID string) {
	entry, err := h.sessions.Get(sessionID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		file, name, ok := h.uploadedFile(w, r)
		if !ok {
			return
		}
		defer func() { _ = file.Close() }()

		t, err := entry.Session.LoadTargetReader(file, name)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		entry.SetReport(nil)

		h.logger.Debug().
			Str("session_id", sessionID).
			Str("table", t.Label()).
			Int("rows", t.NumRows()).
			Msg("Target table loaded")
		response.OK(w, newTableView(t))
		return
	}

	var req targetQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON request body", err.Error())
		return
	}
	if req.Query == "" {
		response.BadRequest(w, "Missing query",
			`provide "query" (with "driver" and "dsn") or upload a file`)
		return
	}

	driver, dsn := req.Driver, req.DSN
	if driver == "" || dsn == "" {
		defaultDriver, defaultDSN := h.app.DatabaseDefaults()
		if driver == "" {
			driver = defaultDriver
		}
		if dsn == "" {
			dsn = defaultDSN
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.QueryTimeout)
	defer cancel()

	t, err := entry.Session.LoadTargetQuery(ctx, driver, dsn, req.Query)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	entry.SetReport(nil)

	h.logger.Debug().
		Str("session_id", sessionID).
		Str("driver", driver).
		Int("rows", t.NumRows()).
		Msg("Target table loaded from query")
	response.OK(w, newTableView(t))
}

// uploadedFile extracts the multipart "file" field, applying the
// upload size cap. On failure it writes the error response itself and
// returns ok=false.
func (h *Handlers) uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.PayloadTooLarge(w, fmt.Sprintf("uploads are capped at %d bytes", constants.MaxUploadBytes))
			return nil, "", false
		}
		response.BadRequest(w, "Invalid upload",
			`expected a multipart form with the table under the "file" field: `+err.Error())
		return nil, "", false
	}

	return file, header.Filename, true
}
