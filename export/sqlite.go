package export

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tsawler/worksheet/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	created    TEXT NOT NULL,
	digest     TEXT NOT NULL,
	pages      INTEGER NOT NULL,
	bad_pages  TEXT NOT NULL,
	stored_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS fund_sources (
	code TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
`

// SQLite stores processed documents in a SQLite database. Every stored
// document is a run with its own id; its rows keep their document order.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema + rowsSchema()); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// rowsSchema creates the rows table with one text column per header field.
func rowsSchema() string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS rows (\n\trun_id TEXT NOT NULL REFERENCES runs(id),\n\tposition INTEGER NOT NULL")
	for _, name := range model.Header {
		fmt.Fprintf(&sb, ",\n\t%q TEXT NOT NULL", name)
	}
	sb.WriteString(",\n\tPRIMARY KEY (run_id, position)\n);\n")
	return sb.String()
}

// DB returns the underlying database handle.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Store saves doc and its rows as a new run and returns the run id.
func (s *SQLite) Store(ctx context.Context, doc *model.Document) (string, error) {
	id := uuid.Must(uuid.NewV7()).String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	bad := make([]string, 0, len(doc.Failures))
	for _, n := range doc.BadPages() {
		bad = append(bad, strconv.Itoa(n))
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, created, digest, pages, bad_pages, stored_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, doc.Metadata.Source, doc.Metadata.Created, doc.Metadata.Digest, doc.Metadata.PageCount,
		strings.Join(bad, ","), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRowSQL())
	if err != nil {
		return "", fmt.Errorf("prepare rows: %w", err)
	}
	defer stmt.Close()

	for i, r := range doc.Rows {
		args := make([]any, 0, len(model.Header)+2)
		args = append(args, id, i)
		for _, v := range r.Values() {
			args = append(args, v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return "", fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func insertRowSQL() string {
	cols := make([]string, 0, len(model.Header)+2)
	cols = append(cols, "run_id", "position")
	for _, name := range model.Header {
		cols = append(cols, strconv.Quote(name))
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO rows (%s) VALUES (%s)", strings.Join(cols, ", "), marks)
}

// StoreFundSources replaces the fund source lookup table entries for the
// given codes.
func (s *SQLite) StoreFundSources(ctx context.Context, sources map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, code := range slices.Sorted(maps.Keys(sources)) {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO fund_sources (code, name) VALUES (?, ?)`, code, sources[code]); err != nil {
			return fmt.Errorf("insert fund source %s: %w", code, err)
		}
	}
	return tx.Commit()
}

// Run is a stored document.
type Run struct {
	ID       string
	Source   string
	Created  string
	Digest   string
	Pages    int
	BadPages []int
}

// Run loads the run with the given id.
func (s *SQLite) Run(ctx context.Context, id string) (*Run, error) {
	var (
		run Run
		bad string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, created, digest, pages, bad_pages FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Source, &run.Created, &run.Digest, &run.Pages, &bad)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	for _, f := range strings.Split(bad, ",") {
		if n, err := strconv.Atoi(f); err == nil {
			run.BadPages = append(run.BadPages, n)
		}
	}
	return &run, nil
}

// Values returns the field values of every row of a run in document order,
// in the order of model.Header.
func (s *SQLite) Values(ctx context.Context, id string) ([][]string, error) {
	cols := make([]string, len(model.Header))
	for i, name := range model.Header {
		cols[i] = strconv.Quote(name)
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM rows WHERE run_id = ? ORDER BY position", strings.Join(cols, ", ")), id)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		values := make([]string, len(model.Header))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, values)
	}
	return out, rows.Err()
}
