// Package veritab reconciles tabular datasets. It loads a source table
// and a target table (CSV or Excel files, or SQL query results), indexes
// each by one or more key columns, and reports the keys missing from the
// target alongside the extras the target carries that the source does not.
//
// The comparison engine itself lives in pkg/recon and is stateless; this
// package wraps it in a Session that holds the two loaded tables between
// interactions:
//
//	// Create a session with default settings
//	s, err := veritab.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load both sides
//	if _, err := s.LoadSource("invoices.xlsx"); err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := s.LoadTargetQuery(ctx, "sqlite", "file:erp.db", "SELECT invoice_id FROM invoices"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Compare on a key column and inspect the report
//	report, err := s.Compare([]string{"invoice_id"}, []string{"invoice_id"}, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("missing in target: %d\n", report.Summary.Missing)
//
// Sessions are safe for concurrent use; the HTTP server shares one
// session per remote client across requests.
package veritab

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/veritab/veritab/internal/loader"
	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/logging"
	"github.com/veritab/veritab/pkg/recon"
	"github.com/veritab/veritab/pkg/tabular"
)

// Session holds the two tables of one reconciliation: a source of truth
// and a target to audit against it. Tables are attached by the Load
// methods (or preloaded through options), compared by Compare, and
// dropped by Reset. All methods are safe for concurrent use.
type Session struct {

	// options are the configured options for the session
	options *options

	// logger receives session diagnostics
	logger *zerolog.Logger

	// loaded tables
	mu     sync.RWMutex
	source *tabular.Table // source of truth
	target *tabular.Table // table audited against the source
}

// New creates a new Session with the given options.
func New(opts ...Option) (*Session, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	s := &Session{
		options: o,
		logger:  o.logger,
		source:  o.source,
		target:  o.target,
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}

	return s, nil
}

// LoadSource reads the source table from the CSV or Excel file at path.
func (s *Session) LoadSource(path string) (*tabular.Table, error) {
	t, err := loader.File(path)
	if err != nil {
		return nil, err
	}
	s.setSource(t)
	return t, nil
}

// LoadSourceReader reads the source table from r. name selects the
// parser by its extension and labels the table, so uploaded files keep
// their original name.
func (s *Session) LoadSourceReader(r io.Reader, name string) (*tabular.Table, error) {
	t, err := loader.Reader(r, name)
	if err != nil {
		return nil, err
	}
	s.setSource(t)
	return t, nil
}

// LoadSourceQuery runs query against a database and uses the result set
// as the source table. driver is one of sqlite, postgres, or sqlserver;
// common aliases are accepted.
func (s *Session) LoadSourceQuery(ctx context.Context, driver, dsn, query string) (*tabular.Table, error) {
	t, err := loader.Query(ctx, driver, dsn, query)
	if err != nil {
		return nil, err
	}
	s.setSource(t)
	return t, nil
}

// LoadTarget reads the target table from the CSV or Excel file at path.
func (s *Session) LoadTarget(path string) (*tabular.Table, error) {
	t, err := loader.File(path)
	if err != nil {
		return nil, err
	}
	s.setTarget(t)
	return t, nil
}

// LoadTargetReader reads the target table from r. name selects the
// parser by its extension and labels the table.
func (s *Session) LoadTargetReader(r io.Reader, name string) (*tabular.Table, error) {
	t, err := loader.Reader(r, name)
	if err != nil {
		return nil, err
	}
	s.setTarget(t)
	return t, nil
}

// LoadTargetQuery runs query against a database and uses the result set
// as the target table. driver is one of sqlite, postgres, or sqlserver;
// common aliases are accepted.
func (s *Session) LoadTargetQuery(ctx context.Context, driver, dsn, query string) (*tabular.Table, error) {
	t, err := loader.Query(ctx, driver, dsn, query)
	if err != nil {
		return nil, err
	}
	s.setTarget(t)
	return t, nil
}

// Source returns the loaded source table.
func (s *Session) Source() (*tabular.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.source == nil {
		return nil, &errors.ValidationError{Field: "source", Message: "no source table loaded"}
	}
	return s.source, nil
}

// Target returns the loaded target table.
func (s *Session) Target() (*tabular.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.target == nil {
		return nil, &errors.ValidationError{Field: "target", Message: "no target table loaded"}
	}
	return s.target, nil
}

// Compare indexes both tables by the given key columns and reports the
// differences. The column lists must have the same length, 1 to 4
// columns per side. With deduplicate true only key presence is
// compared; with deduplicate false per-key occurrence counts are
// compared as well.
func (s *Session) Compare(sourceColumns, targetColumns []string, deduplicate bool) (*recon.Report, error) {
	s.mu.RLock()
	source, target := s.source, s.target
	s.mu.RUnlock()

	if source == nil {
		return nil, &errors.ValidationError{Field: "source", Message: "no source table loaded"}
	}
	if target == nil {
		return nil, &errors.ValidationError{Field: "target", Message: "no target table loaded"}
	}

	var reportOpts []recon.ReportOption
	if s.options.displayLimit != nil {
		reportOpts = append(reportOpts, recon.WithDisplayLimit(*s.options.displayLimit))
	}

	start := time.Now()
	report, err := recon.Compare(source, target, sourceColumns, targetColumns, deduplicate, reportOpts...)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("source", report.Summary.SourceLabel).
		Str("target", report.Summary.TargetLabel).
		Str("mode", string(report.Summary.Mode)).
		Int("missing", report.Summary.Missing).
		Int("extra", report.Summary.Extra).
		Dur("elapsed", time.Since(start)).
		Msg("Comparison complete")

	return report, nil
}

// Reset drops both tables, returning the session to its initial state.
func (s *Session) Reset() {
	s.mu.Lock()
	s.source = nil
	s.target = nil
	s.mu.Unlock()

	s.logger.Debug().Msg("Session reset")
}

// setSource swaps in a newly loaded source table.
func (s *Session) setSource(t *tabular.Table) {
	s.mu.Lock()
	s.source = t
	s.mu.Unlock()

	s.logger.Debug().
		Str("table", t.Label()).
		Int("rows", t.NumRows()).
		Int("columns", t.NumColumns()).
		Msg("Source table loaded")
}

// setTarget swaps in a newly loaded target table.
func (s *Session) setTarget(t *tabular.Table) {
	s.mu.Lock()
	s.target = t
	s.mu.Unlock()

	s.logger.Debug().
		Str("table", t.Label()).
		Int("rows", t.NumRows()).
		Int("columns", t.NumColumns()).
		Msg("Target table loaded")
}
