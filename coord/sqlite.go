package coord

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteFactory creates sinks backed by tables in a single in-memory
// SQLite database. It trades speed for queryability: every sink is a
// plain REAL-typed table that can be inspected through the factory's DB
// handle with ordinary SQL.
type SQLiteFactory struct {
	db *sql.DB
}

// NewSQLiteFactory opens an in-memory SQLite database to host sinks.
// Close the factory when all of its sinks are done.
func NewSQLiteFactory() (*SQLiteFactory, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps every sink in the same in-memory database.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
		return nil, err
	}
	return &SQLiteFactory{db: db}, nil
}

// DB exposes the underlying database for ad-hoc queries against sinks.
func (f *SQLiteFactory) DB() *sql.DB {
	return f.db
}

// Close releases the in-memory database and every sink in it.
func (f *SQLiteFactory) Close() error {
	return f.db.Close()
}

// CreateSink creates a table named after the (sanitized) sink name with
// one REAL column per coordinate column and one row per coordinate row,
// all initialized to zero.
func (f *SQLiteFactory) CreateSink(name string, columnCount, rowCount int) (Sink, error) {
	if err := checkShape(columnCount, rowCount); err != nil {
		return nil, err
	}

	table := sanitizeTableName(name)

	var ddl strings.Builder
	fmt.Fprintf(&ddl, "CREATE TABLE %s (row_idx INTEGER PRIMARY KEY", table)
	for i := range columnCount {
		fmt.Fprintf(&ddl, ", c%d REAL NOT NULL DEFAULT 0", i)
	}
	ddl.WriteString(")")

	if _, err := f.db.Exec(ddl.String()); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	// Pre-populate so SetRow/GetRow address existing rows.
	if err := f.fillRows(table, rowCount); err != nil {
		return nil, err
	}

	columns := make([]string, columnCount)
	assigns := make([]string, columnCount)
	for i := range columnCount {
		columns[i] = fmt.Sprintf("c%d", i)
		assigns[i] = fmt.Sprintf("c%d = ?", i)
	}

	setStmt, err := f.db.Prepare(fmt.Sprintf(
		"UPDATE %s SET %s WHERE row_idx = ?", table, strings.Join(assigns, ", ")))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update for %s: %w", table, err)
	}
	getStmt, err := f.db.Prepare(fmt.Sprintf(
		"SELECT %s FROM %s WHERE row_idx = ?", strings.Join(columns, ", "), table))
	if err != nil {
		closeErr := setStmt.Close()
		if closeErr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to close statement: %w", closeErr))
		}
		return nil, fmt.Errorf("failed to prepare select for %s: %w", table, err)
	}

	return &sqliteSink{
		name:    name,
		table:   table,
		cols:    columnCount,
		rows:    rowCount,
		setStmt: setStmt,
		getStmt: getStmt,
	}, nil
}

// fillRows inserts rowCount zero rows inside one transaction.
func (f *SQLiteFactory) fillRows(table string, rowCount int) error {
	tx, err := f.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (row_idx) VALUES (?)", table))
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rollbackErr))
		}
		return fmt.Errorf("failed to prepare insert for %s: %w", table, err)
	}
	for i := range rowCount {
		if _, err := stmt.Exec(i); err != nil {
			rollbackErr := tx.Rollback()
			if rollbackErr != nil {
				return errors.Join(err, fmt.Errorf("rollback failed: %w", rollbackErr))
			}
			return fmt.Errorf("failed to insert row %d into %s: %w", i, table, err)
		}
	}
	if err := stmt.Close(); err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rollbackErr))
		}
		return fmt.Errorf("failed to close statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rows for %s: %w", table, err)
	}
	return nil
}

// sqliteSink addresses one table of the factory's database.
type sqliteSink struct {
	name    string
	table   string
	cols    int
	rows    int
	setStmt *sql.Stmt
	getStmt *sql.Stmt
}

// Name returns the name the sink was created under.
func (s *sqliteSink) Name() string { return s.name }

// RowCount returns the fixed number of rows.
func (s *sqliteSink) RowCount() int { return s.rows }

// ColumnCount returns the fixed number of columns.
func (s *sqliteSink) ColumnCount() int { return s.cols }

// SetRow updates the given row. A storage failure on a validated index is
// unrecoverable for an in-memory table and panics.
func (s *sqliteSink) SetRow(row int, values []float64) {
	checkRow(row, s.rows)
	checkBuffer(len(values), s.cols)

	args := make([]any, 0, s.cols+1)
	for _, v := range values {
		args = append(args, v)
	}
	args = append(args, row)
	if _, err := s.setStmt.Exec(args...); err != nil {
		panic(fmt.Sprintf("coord: sqlite update of %s row %d failed: %v", s.table, row, err))
	}
}

// GetRow reads the given row into buf and returns buf.
func (s *sqliteSink) GetRow(row int, buf []float64) []float64 {
	checkRow(row, s.rows)
	checkBuffer(len(buf), s.cols)

	dest := make([]any, s.cols)
	for i := range buf {
		dest[i] = &buf[i]
	}
	if err := s.getStmt.QueryRow(row).Scan(dest...); err != nil {
		panic(fmt.Sprintf("coord: sqlite select of %s row %d failed: %v", s.table, row, err))
	}
	return buf
}

// sanitizeTableName reduces a sink name to a safe SQL identifier: spaces,
// dashes, and dots become underscores, anything else non-alphanumeric is
// dropped, and a leading digit or empty result gets a fallback prefix.
func sanitizeTableName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")

	var sanitized strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			sanitized.WriteRune(r)
		}
	}

	result := sanitized.String()
	if result == "" {
		return "sink"
	}
	if result[0] >= '0' && result[0] <= '9' {
		result = "sink_" + result
	}
	return result
}
