// Package trips loads city trip data and narrows it by month and weekday.
package trips

import "github.com/verte-zerg/bikeshare/internal/model"

// Table is an immutable, ordered set of trips sharing one schema.
type Table struct {
	schema  model.Schema
	records []model.TripRecord
}

// NewTable builds a table from a copy of records.
func NewTable(schema model.Schema, records []model.TripRecord) *Table {
	return &Table{
		schema:  schema,
		records: append([]model.TripRecord(nil), records...),
	}
}

// Schema returns the columns the table was loaded with.
func (t *Table) Schema() model.Schema {
	s := t.schema
	s.Columns = append([]string(nil), s.Columns...)
	return s
}

// Len returns the number of trips.
func (t *Table) Len() int {
	return len(t.records)
}

// Record returns the i-th trip.
func (t *Table) Record(i int) model.TripRecord {
	return t.records[i]
}

// Page returns up to size trips starting at offset.
func (t *Table) Page(offset, size int) []model.TripRecord {
	if offset < 0 || size <= 0 || offset >= len(t.records) {
		return nil
	}
	end := offset + size
	if end > len(t.records) {
		end = len(t.records)
	}
	return append([]model.TripRecord(nil), t.records[offset:end]...)
}

// PageCount returns how many pages of size cover the table.
func (t *Table) PageCount(size int) int {
	if size <= 0 {
		return 0
	}
	return (len(t.records) + size - 1) / size
}
