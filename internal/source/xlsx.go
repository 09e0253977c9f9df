package source

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/bikeshare/internal/model"
)

const timestampLayout = "2006-01-02 15:04:05"

// Timestamp columns whose numeric cells are Excel date serials.
var serialDateColumns = map[string]bool{
	model.ColumnStartTime: true,
	model.ColumnEndTime:   true,
}

// readXLSX reads the first sheet; its first row is the header. Cells are read
// unformatted so datetimes keep their seconds.
func readXLSX(path string) (Table, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only source.
			_ = cerr
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, ErrEmptySource
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return Table{}, ErrEmptySource
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	header := raw[0]
	rows := make([][]sql.NullString, 0, len(raw)-1)
	for _, record := range raw[1:] {
		row := make([]sql.NullString, 0, len(header))
		for i, v := range record {
			if i < len(header) && serialDateColumns[header[i]] {
				v = serialToTimestamp(v, date1904)
			}
			row = append(row, cell(v))
		}
		rows = append(rows, padRow(row, len(header)))
	}
	return Table{Header: header, Rows: rows}, nil
}

// serialToTimestamp formats a numeric date serial; other values pass through.
func serialToTimestamp(v string, date1904 bool) string {
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return v
	}
	return t.Format(timestampLayout)
}
