package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // SQLite driver.
)

// TripsTable is the table read from SQLite sources.
const TripsTable = "trips"

func readSQLite(ctx context.Context, path string) (Table, error) {
	// sql.Open would create a missing database file.
	if _, err := os.Stat(path); err != nil {
		return Table{}, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Table{}, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close for read-only source.
			_ = cerr
		}
	}()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %q`, TripsTable))
	if err != nil {
		return Table{}, fmt.Errorf("failed to query %s: %w", TripsTable, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	header, err := rows.Columns()
	if err != nil {
		return Table{}, err
	}
	var out [][]sql.NullString
	for rows.Next() {
		row := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return Table{}, err
		}
		for i := range row {
			if row[i].Valid && row[i].String == "" {
				row[i].Valid = false
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return Table{}, err
	}
	return Table{Header: header, Rows: out}, nil
}
