package stats

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

const (
	ruler           = "----------------------------------------"
	noDataMessage   = "No data for this selection."
	stationColWidth = 48
)

// Result is one engine output with the time it took.
type Result[T any] struct {
	Value   T
	Err     error
	Elapsed time.Duration
}

// Report bundles all statistics for one city and filter selection.
type Report struct {
	City     string
	Filter   model.FilterSpec
	Trips    int
	Temporal Result[model.TemporalStats]
	Stations Result[model.StationStats]
	Duration Result[model.DurationStats]
	Users    Result[model.UserStats]
}

// BuildReport runs every engine over the filtered table.
func BuildReport(city string, spec model.FilterSpec, t *trips.Table) Report {
	return Report{
		City:     city,
		Filter:   spec,
		Trips:    t.Len(),
		Temporal: measure(func() (model.TemporalStats, error) { return Temporal(t) }),
		Stations: measure(func() (model.StationStats, error) { return Stations(t) }),
		Duration: measure(func() (model.DurationStats, error) { return Duration(t) }),
		Users:    measure(func() (model.UserStats, error) { return Users(t), nil }),
	}
}

func measure[T any](fn func() (T, error)) Result[T] {
	start := time.Now()
	v, err := fn()
	return Result[T]{Value: v, Err: err, Elapsed: time.Since(start)}
}

// RenderOptions tunes text output.
type RenderOptions struct {
	// Width bounds the hour histogram; zero uses the terminal width.
	Width     int
	Histogram bool
	Timings   bool
}

// RenderReport prints every section of the report.
func RenderReport(w io.Writer, r Report, opts RenderOptions) error {
	header := fmt.Sprintf("City: %s  month: %s  day: %s  trips: %d",
		titleCase(r.City), r.Filter.Month, r.Filter.Day, r.Trips)
	sections := [][]string{
		{header, ruler},
		withTiming(TemporalLines(r.Temporal, opts), r.Temporal.Elapsed, opts),
		withTiming(StationLines(r.Stations), r.Stations.Elapsed, opts),
		withTiming(DurationLines(r.Duration), r.Duration.Elapsed, opts),
		withTiming(UserLines(r.Users), r.Users.Elapsed, opts),
	}
	for _, lines := range sections {
		if err := writeLines(w, lines); err != nil {
			return err
		}
	}
	return nil
}

// TemporalLines renders the travel time section.
func TemporalLines(res Result[model.TemporalStats], opts RenderOptions) []string {
	lines := []string{"Most Frequent Times of Travel", ""}
	if failed, msg := sectionError(res.Err); failed {
		return append(lines, msg)
	}
	s := res.Value
	lines = append(lines,
		fmt.Sprintf("Most frequent month (only applicable if month = 'all'): %s (%d trips)",
			time.Month(s.PopularMonth), s.PopularMonthCount),
		fmt.Sprintf("Most common day of week (only applicable if day = 'all'): %s (%d trips)",
			s.PopularDay, s.PopularDayCount),
		fmt.Sprintf("Most frequent start hour: %d (%d trips)", s.PopularHour, s.PopularHourCount),
	)
	if opts.Histogram {
		lines = append(lines, "", "Trips by start hour")
		lines = append(lines, HourHistogram(s.HourCounts, opts.Width)...)
	}
	return lines
}

// StationLines renders the station popularity section.
func StationLines(res Result[model.StationStats]) []string {
	lines := []string{"Most Popular Stations and Trip", ""}
	if failed, msg := sectionError(res.Err); failed {
		return append(lines, msg)
	}
	s := res.Value
	rows := [][]string{
		{"Start station", stationLabel(s.TopStart, s.TopStartCount), strconv.Itoa(s.TopStartCount)},
		{"End station", stationLabel(s.TopEnd, s.TopEndCount), strconv.Itoa(s.TopEndCount)},
		{"Start -> end", stationLabel(s.TopPair.Start+" -> "+s.TopPair.End, s.TopPairCount), strconv.Itoa(s.TopPairCount)},
	}
	return append(lines, formatTable([]string{"", "Station", "Trips"}, rows, map[int]bool{2: true})...)
}

func stationLabel(name string, count int) string {
	if count == 0 {
		return "n/a"
	}
	return clip(name, stationColWidth)
}

// DurationLines renders the trip duration section.
func DurationLines(res Result[model.DurationStats]) []string {
	lines := []string{"Trip Duration", ""}
	if failed, msg := sectionError(res.Err); failed {
		return append(lines, msg)
	}
	s := res.Value
	return append(lines,
		fmt.Sprintf("Total travel time in hours: %.2f", s.TotalHours),
		fmt.Sprintf("Average travel time in minutes: %.0f", s.MeanMinutes),
	)
}

// UserLines renders the rider section.
func UserLines(res Result[model.UserStats]) []string {
	lines := []string{"User Stats", ""}
	s := res.Value

	if len(s.TypeCounts) == 0 {
		lines = append(lines, "No user type data for this selection.")
	} else {
		lines = append(lines, countTable("User type", s.TypeCounts)...)
	}
	lines = append(lines, "")

	if s.Gender == nil {
		lines = append(lines, "No gender data available for this city.")
	} else {
		if len(s.Gender.Counts) == 0 {
			lines = append(lines, "No gender values in this selection.")
		} else {
			lines = append(lines, countTable("Gender", s.Gender.Counts)...)
		}
		lines = append(lines, fmt.Sprintf("Missing values across all columns: %d", s.Gender.MissingValues))
	}
	lines = append(lines, "")

	switch {
	case s.BirthYear == nil:
		lines = append(lines, "No birth year data available for this city.")
	case s.BirthYear.Known == 0:
		lines = append(lines, "No birth years in this selection.")
	default:
		lines = append(lines,
			fmt.Sprintf("Earliest year of birth: %d", s.BirthYear.Earliest),
			fmt.Sprintf("Most recent year of birth: %d", s.BirthYear.MostRecent),
			fmt.Sprintf("Most common year of birth: %d", s.BirthYear.MostCommon),
		)
	}
	return lines
}

func countTable(label string, counts []model.CategoryCount) []string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Value, strconv.Itoa(c.Count)})
	}
	return formatTable([]string{label, "Trips"}, rows, map[int]bool{1: true})
}

func sectionError(err error) (bool, string) {
	switch {
	case err == nil:
		return false, ""
	case errors.Is(err, ErrEmptyTable):
		return true, noDataMessage
	default:
		return true, fmt.Sprintf("Failed to compute: %v", err)
	}
}

func withTiming(lines []string, elapsed time.Duration, opts RenderOptions) []string {
	lines = append([]string{""}, lines...)
	if opts.Timings {
		lines = append(lines, "", fmt.Sprintf("This took %.4f seconds.", elapsed.Seconds()))
	}
	return append(lines, ruler)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToTitle(r)) + word[size:]
	}
	return strings.Join(words, " ")
}
