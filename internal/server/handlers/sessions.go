package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/veritab/veritab"
	"github.com/veritab/veritab/internal/server/response"
)

// createSessionRequest is the optional POST /sessions body.
type createSessionRequest struct {
	// DisplayLimit caps provenance row numbers per report record.
	// Zero keeps the default; negative removes the cap.
	DisplayLimit *int `json:"display_limit,omitempty"`
}

// sessionView is the JSON shape for one session.
type sessionView struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Source    *tableView `json:"source"`
	Target    *tableView `json:"target"`
	Compared  bool       `json:"compared"`
}

// HandleCreateSession handles POST /api/v1/sessions. The body is
// optional; an empty body creates a session with default settings.
func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid JSON request body", err.Error())
		return
	}

	var opts []veritab.Option
	if req.DisplayLimit != nil {
		opts = append(opts, veritab.WithDisplayLimit(*req.DisplayLimit))
	}

	session, err := h.app.NewSession(opts...)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	entry := h.sessions.Add(session)

	h.logger.Info().Str("session_id", entry.ID).Msg("Session created")
	response.Created(w, h.sessionView(entry.ID))
}

// HandleGetSession handles GET /api/v1/sessions/{id}.
func (h *Handlers) HandleGetSession(w http.ResponseWriter, _ *http.Request, sessionID string) {
	if _, err := h.sessions.Get(sessionID); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, h.sessionView(sessionID))
}

// HandleDeleteSession handles DELETE /api/v1/sessions/{id}. The
// session's tables are released immediately rather than waiting for
// the TTL to lapse.
func (h *Handlers) HandleDeleteSession(w http.ResponseWriter, _ *http.Request, sessionID string) {
	entry, err := h.sessions.Get(sessionID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	entry.Session.Reset()
	h.sessions.Delete(sessionID)

	h.logger.Info().Str("session_id", sessionID).Msg("Session deleted")
	response.OK(w, map[string]any{"deleted": sessionID})
}

// sessionView assembles the current view of a session. Unloaded sides
// render as null.
func (h *Handlers) sessionView(sessionID string) sessionView {
	entry, err := h.sessions.Get(sessionID)
	if err != nil {
		return sessionView{ID: sessionID}
	}

	view := sessionView{
		ID:        entry.ID,
		CreatedAt: entry.CreatedAt,
		Compared:  entry.Report() != nil,
	}
	if t, err := entry.Session.Source(); err == nil {
		view.Source = newTableView(t)
	}
	if t, err := entry.Session.Target(); err == nil {
		view.Target = newTableView(t)
	}
	return view
}
