// Package sessions provides the server's in-memory registry of live
// reconciliation sessions. It uses patrickmn/go-cache for TTL-based
// expiry so abandoned sessions (and their loaded tables) are released
// without explicit cleanup by the client.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/veritab/veritab"
	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/recon"
)

// Entry is one live session plus the latest comparison report, kept so
// the export endpoint can serve a workbook without re-running the
// comparison. Reloading either table clears the report.
type Entry struct {
	ID        string
	CreatedAt time.Time
	Session   *veritab.Session

	mu     sync.RWMutex
	report *recon.Report
}

// SetReport stores the latest comparison report. Passing nil clears it.
func (e *Entry) SetReport(r *recon.Report) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.report = r
}

// Report returns the latest comparison report, or nil if no comparison
// has been run since the tables last changed.
func (e *Entry) Report() *recon.Report {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.report
}

// Registry stores session entries keyed by UUID with sliding TTL.
type Registry struct {
	store  *gocache.Cache
	ttl    time.Duration
	logger *zerolog.Logger
}

// New creates a registry. ttl is how long an idle session is retained;
// cleanupInterval is how often expired entries are evicted from memory.
func New(ttl, cleanupInterval time.Duration, logger *zerolog.Logger) *Registry {
	store := gocache.New(ttl, cleanupInterval)
	store.OnEvicted(func(id string, _ any) {
		logger.Debug().Str("session_id", id).Msg("Session expired")
	})

	return &Registry{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Add registers a session under a fresh UUID and returns its entry.
func (r *Registry) Add(session *veritab.Session) *Entry {
	entry := &Entry{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Session:   session,
	}
	r.store.Set(entry.ID, entry, gocache.DefaultExpiration)

	r.logger.Debug().Str("session_id", entry.ID).Msg("Session created")
	return entry
}

// Get returns the entry for id and refreshes its TTL, so a session
// stays alive as long as the client keeps using it.
func (r *Registry) Get(id string) (*Entry, error) {
	v, found := r.store.Get(id)
	if !found {
		return nil, &errors.NotFoundError{Resource: "session", ID: id}
	}

	entry := v.(*Entry)
	r.store.Set(id, entry, gocache.DefaultExpiration)
	return entry, nil
}

// Delete removes the entry for id. Deleting an unknown id is a no-op.
func (r *Registry) Delete(id string) {
	r.store.Delete(id)
	r.logger.Debug().Str("session_id", id).Msg("Session deleted")
}

// Count returns the number of live sessions, expired entries included
// until the next cleanup pass.
func (r *Registry) Count() int {
	return r.store.ItemCount()
}

// Clear removes all sessions.
func (r *Registry) Clear() {
	r.store.Flush()
}
