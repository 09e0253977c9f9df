package stats

import (
	"errors"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

// ErrEmptyTable is returned by engines that have nothing to summarize.
var ErrEmptyTable = errors.New("no trips in selection")

// Temporal finds the most frequent month, weekday and start hour. Popular
// month and day only say something when the selection did not fix them.
func Temporal(t *trips.Table) (model.TemporalStats, error) {
	var out model.TemporalStats
	n := t.Len()
	if n == 0 {
		return out, ErrEmptyTable
	}
	out.PopularMonth, out.PopularMonthCount, _ = Mode(n, func(i int) (int, bool) {
		return t.Record(i).Month, true
	})
	out.PopularDay, out.PopularDayCount, _ = Mode(n, func(i int) (string, bool) {
		return t.Record(i).Weekday, true
	})
	out.PopularHour, out.PopularHourCount, _ = Mode(n, func(i int) (int, bool) {
		return t.Record(i).Hour, true
	})
	for i := 0; i < n; i++ {
		out.HourCounts[t.Record(i).Hour]++
	}
	return out, nil
}
