// Package model defines shared data structures.
package model

import (
	"database/sql"
	"time"
)

// Source column names as they appear in the city data files.
const (
	ColumnStartTime    = "Start Time"
	ColumnEndTime      = "End Time"
	ColumnTripDuration = "Trip Duration"
	ColumnStartStation = "Start Station"
	ColumnEndStation   = "End Station"
	ColumnUserType     = "User Type"
	ColumnGender       = "Gender"
	ColumnBirthYear    = "Birth Year"
)

// RequiredColumns must exist in every city source.
var RequiredColumns = []string{
	ColumnStartTime,
	ColumnTripDuration,
	ColumnStartStation,
	ColumnEndStation,
	ColumnUserType,
}

// OptionalColumns may be missing depending on the city.
var OptionalColumns = []string{
	ColumnEndTime,
	ColumnGender,
	ColumnBirthYear,
}

// TripRecord is one bike rental.
type TripRecord struct {
	StartTime    time.Time
	EndTime      *time.Time
	StartStation sql.NullString
	EndStation   sql.NullString
	DurationSec  float64
	UserType     sql.NullString
	Gender       sql.NullString
	BirthYear    sql.NullInt64

	// Derived from StartTime at load time.
	Month   int
	Weekday string
	Hour    int

	// NullCells counts empty cells across every source column of the row.
	NullCells int
}

// Schema describes the columns a loaded table came with.
type Schema struct {
	Columns  []string
	optional map[string]bool
}

// NewSchema builds a schema from a source header.
func NewSchema(columns []string) Schema {
	s := Schema{
		Columns:  append([]string(nil), columns...),
		optional: map[string]bool{},
	}
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, c := range OptionalColumns {
		if present[c] {
			s.optional[c] = true
		}
	}
	return s
}

// Has reports whether an optional column is present.
func (s Schema) Has(column string) bool {
	return s.optional[column]
}

// FilterSpec selects a month and a weekday; "all" disables either predicate.
type FilterSpec struct {
	Month string
	Day   string
}

// TemporalStats holds the most frequent travel times.
type TemporalStats struct {
	PopularMonth      int
	PopularMonthCount int
	PopularDay        string
	PopularDayCount   int
	PopularHour       int
	PopularHourCount  int
	HourCounts        [24]int
}

// StationStats holds the most popular stations and trip.
type StationStats struct {
	TopStart      string
	TopStartCount int
	TopEnd        string
	TopEndCount   int
	TopPair       StationPair
	TopPairCount  int
}

// StationPair is an ordered start/end combination.
type StationPair struct {
	Start string
	End   string
}

// DurationStats summarizes trip durations.
type DurationStats struct {
	Trips        int
	TotalSeconds float64
	MeanSeconds  float64
	TotalHours   float64
	MeanMinutes  float64
}

// CategoryCount is one group in a value count.
type CategoryCount struct {
	Value string
	Count int
}

// UserStats summarizes riders. Nil Gender or BirthYear means the source has
// no such column.
type UserStats struct {
	TypeCounts []CategoryCount
	Gender     *GenderStats
	BirthYear  *BirthYearStats
}

// GenderStats holds gender counts. MissingValues counts empty cells in all
// columns of the selection, not only gender.
type GenderStats struct {
	Counts        []CategoryCount
	MissingValues int
}

// BirthYearStats holds birth year extremes and mode over known years.
type BirthYearStats struct {
	Known      int
	Earliest   int
	MostRecent int
	MostCommon int
}
