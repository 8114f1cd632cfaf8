package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Drivers for the data sources accepted by Open.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// DefaultTable is the table Open reads when the source is a database and no
// table is given.
const DefaultTable = "samples"

// ReadSQL runs query on db and returns the result set as a Frame. Every
// column is read as text; NULL values are rejected since the tree has no
// missing-value handling.
func ReadSQL(ctx context.Context, db *sql.DB, query string, args ...interface{}) (*Frame, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "running query")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "reading columns")
	}

	var out [][]string
	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for n := 0; rows.Next(); n++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scanning row %d", n)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if !v.Valid {
				return nil, errors.NewInvalidInputErrorf("ReadSQL", "row %d: NULL in column %q", n, columns[i])
			}
			row[i] = v.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating rows")
	}
	return NewFrame(columns, out)
}

// SourceOption configures Open.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	table string
	csv   []CSVOption
}

// WithTable sets the table read from database sources.
func WithTable(table string) SourceOption {
	return func(c *sourceConfig) {
		c.table = table
	}
}

// WithCSVOptions passes options through to ReadCSV for CSV sources.
func WithCSVOptions(opts ...CSVOption) SourceOption {
	return func(c *sourceConfig) {
		c.csv = append(c.csv, opts...)
	}
}

// Open loads a Frame from source. PostgreSQL URLs (postgres:// or
// postgresql://) go through lib/pq, paths ending in .db, .sqlite or .sqlite3
// through go-sqlite3, and anything else is read as a CSV file. An empty
// source reads CSV from stdin.
func Open(ctx context.Context, source string, opts ...SourceOption) (*Frame, error) {
	cfg := &sourceConfig{table: DefaultTable}
	for _, opt := range opts {
		opt(cfg)
	}
	driver := driverFor(source)
	if driver == "" {
		return ReadCSVFile(source, cfg.csv...)
	}
	if strings.ContainsAny(cfg.table, `"`) {
		return nil, errors.NewValidationError("table", "contains invalid character '\"'", cfg.table)
	}
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", driver)
	}
	defer db.Close()
	return ReadSQL(ctx, db, fmt.Sprintf(`SELECT * FROM "%s"`, cfg.table))
}

// IsDatabase reports whether Open reads source from a database rather than
// a CSV file.
func IsDatabase(source string) bool {
	return driverFor(source) != ""
}

func driverFor(source string) string {
	switch {
	case strings.HasPrefix(source, "postgres://"), strings.HasPrefix(source, "postgresql://"):
		return "postgres"
	case strings.HasSuffix(source, ".db"), strings.HasSuffix(source, ".sqlite"), strings.HasSuffix(source, ".sqlite3"):
		return "sqlite3"
	default:
		return ""
	}
}
