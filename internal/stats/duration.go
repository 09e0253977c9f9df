package stats

import (
	"math"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

// Duration sums and averages trip durations. Hours are rounded to two
// decimals and minutes to whole minutes; seconds keep full precision.
func Duration(t *trips.Table) (model.DurationStats, error) {
	n := t.Len()
	if n == 0 {
		return model.DurationStats{}, ErrEmptyTable
	}
	var total float64
	for i := 0; i < n; i++ {
		total += t.Record(i).DurationSec
	}
	mean := total / float64(n)
	return model.DurationStats{
		Trips:        n,
		TotalSeconds: total,
		MeanSeconds:  mean,
		TotalHours:   roundTo(total/3600, 2),
		MeanMinutes:  math.Round(mean / 60),
	}, nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
