package source

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

func readCSV(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only source.
			_ = cerr
		}
	}()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, ErrEmptySource
		}
		return Table{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]sql.NullString
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("failed to read csv row: %w", err)
		}
		row := make([]sql.NullString, len(record))
		for i, v := range record {
			row[i] = cell(v)
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}, nil
}
