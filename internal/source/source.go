// Package source reads raw tabular city data from CSV, SQLite and XLSX files.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrEmptySource       = errors.New("source has no header")
)

// Table is the raw content of a source. Empty cells are invalid NullStrings.
type Table struct {
	Header []string
	Rows   [][]sql.NullString
}

// Read loads the whole source at path, picking the reader by file extension.
func Read(ctx context.Context, path string) (Table, error) {
	var (
		t   Table
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		t, err = readCSV(path)
	case ".db", ".sqlite", ".sqlite3":
		t, err = readSQLite(ctx, path)
	case ".xlsx":
		t, err = readXLSX(path)
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Table{}, err
	}
	if len(t.Header) == 0 {
		return Table{}, ErrEmptySource
	}
	return t, nil
}

func cell(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

// padRow fills short rows with empty cells so every row matches the header.
func padRow(row []sql.NullString, width int) []sql.NullString {
	for len(row) < width {
		row = append(row, sql.NullString{})
	}
	return row
}
