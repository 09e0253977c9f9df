package stats

import (
	"database/sql"
	"io"
	"strconv"

	"github.com/verte-zerg/bikeshare/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// TripRows lays out trips as display cells. Optional columns appear only when
// the schema has them; derived calendar fields come last.
func TripRows(schema model.Schema, records []model.TripRecord) ([]string, [][]string) {
	headers := []string{model.ColumnStartTime}
	if schema.Has(model.ColumnEndTime) {
		headers = append(headers, model.ColumnEndTime)
	}
	headers = append(headers,
		model.ColumnTripDuration, model.ColumnStartStation, model.ColumnEndStation, model.ColumnUserType)
	if schema.Has(model.ColumnGender) {
		headers = append(headers, model.ColumnGender)
	}
	if schema.Has(model.ColumnBirthYear) {
		headers = append(headers, model.ColumnBirthYear)
	}
	headers = append(headers, "Month", "Weekday", "Hour")

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{rec.StartTime.Format(timeLayout)}
		if schema.Has(model.ColumnEndTime) {
			end := ""
			if rec.EndTime != nil {
				end = rec.EndTime.Format(timeLayout)
			}
			row = append(row, end)
		}
		row = append(row,
			strconv.FormatFloat(rec.DurationSec, 'f', -1, 64),
			nullText(rec.StartStation),
			nullText(rec.EndStation),
			nullText(rec.UserType),
		)
		if schema.Has(model.ColumnGender) {
			row = append(row, nullText(rec.Gender))
		}
		if schema.Has(model.ColumnBirthYear) {
			year := ""
			if rec.BirthYear.Valid {
				year = strconv.FormatInt(rec.BirthYear.Int64, 10)
			}
			row = append(row, year)
		}
		row = append(row, strconv.Itoa(rec.Month), rec.Weekday, strconv.Itoa(rec.Hour))
		rows = append(rows, row)
	}
	return headers, rows
}

// RenderTrips prints trips as an aligned text table.
func RenderTrips(w io.Writer, schema model.Schema, records []model.TripRecord) error {
	headers, rows := TripRows(schema, records)
	return writeLines(w, formatTable(headers, rows, nil))
}

func nullText(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
