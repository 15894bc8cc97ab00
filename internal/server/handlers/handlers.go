// Package handlers provides HTTP request handlers for the veritab API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/veritab/veritab/internal/appcontext"
	"github.com/veritab/veritab/internal/server/sessions"
	"github.com/veritab/veritab/pkg/tabular"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app       appcontext.Interface
	sessions  *sessions.Registry
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(
	app appcontext.Interface,
	registry *sessions.Registry,
	logger *zerolog.Logger,
	startTime time.Time,
) *Handlers {
	return &Handlers{
		app:       app,
		sessions:  registry,
		logger:    logger,
		startTime: startTime,
	}
}

// tableView is the JSON shape for one loaded table's metadata.
type tableView struct {
	Label   string   `json:"label"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

func newTableView(t *tabular.Table) *tableView {
	return &tableView{
		Label:   t.Label(),
		Columns: t.Columns(),
		Rows:    t.NumRows(),
	}
}
