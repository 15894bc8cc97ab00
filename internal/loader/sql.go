package loader

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	// Drivers registered for Query.
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"

	"github.com/veritab/veritab/pkg/errors"
	"github.com/veritab/veritab/pkg/logging"
	"github.com/veritab/veritab/pkg/tabular"
)

// QueryLabel is the label given to tables produced by Query.
const QueryLabel = "query"

// driverAliases maps operator-facing driver names to registered
// database/sql driver names.
var driverAliases = map[string]string{
	"sqlite":     "sqlite",
	"sqlite3":    "sqlite",
	"postgres":   "postgres",
	"postgresql": "postgres",
	"pgsql":      "postgres",
	"sqlserver":  "sqlserver",
	"mssql":      "sqlserver",
}

// Drivers returns the canonical driver names Query accepts, sorted.
func Drivers() []string {
	seen := make(map[string]bool, len(driverAliases))
	names := make([]string, 0, len(driverAliases))
	for _, d := range driverAliases {
		if !seen[d] {
			seen[d] = true
			names = append(names, d)
		}
	}
	sort.Strings(names)
	return names
}

// ResolveDriver maps a friendly driver name (case-insensitive, aliases
// like "mssql" or "postgresql" allowed) to the registered driver name.
func ResolveDriver(name string) (string, error) {
	d, ok := driverAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", errors.NewValidationError("driver", name,
			"supported drivers are "+strings.Join(Drivers(), ", "))
	}
	return d, nil
}

// Query runs query against the database at dsn and returns the result
// set as a table labeled "query". Column names come from the result set.
// Values are scanned as raw bytes and kept as strings in the database's
// native formatting; NULL becomes the empty string.
func Query(ctx context.Context, driver, dsn, query string) (*tabular.Table, error) {
	drv, err := ResolveDriver(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(drv, dsn)
	if err != nil {
		return nil, errors.WrapQuery(drv, err)
	}
	defer func() { _ = db.Close() }()

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.WrapQuery(drv, err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.WrapQuery(drv, err)
	}

	raw := make([]sql.RawBytes, len(columns))
	dest := make([]any, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}

	var records [][]string
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.WrapQuery(drv, err)
		}
		rec := make([]string, len(columns))
		for i, v := range raw {
			rec[i] = string(v) // NULL scans as nil, becomes ""
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapQuery(drv, err)
	}

	logging.Ctx(ctx).Debug().
		Str("driver", drv).
		Int("columns", len(columns)).
		Int("rows", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("Query result loaded")

	return tabular.New(QueryLabel, columns, records)
}
