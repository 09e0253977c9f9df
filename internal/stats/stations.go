package stats

import (
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

// Stations finds the most used start station, end station and start/end
// pair. Trips with an empty station are left out of the affected count.
func Stations(t *trips.Table) (model.StationStats, error) {
	var out model.StationStats
	n := t.Len()
	if n == 0 {
		return out, ErrEmptyTable
	}
	out.TopStart, out.TopStartCount, _ = Mode(n, func(i int) (string, bool) {
		s := t.Record(i).StartStation
		return s.String, s.Valid
	})
	out.TopEnd, out.TopEndCount, _ = Mode(n, func(i int) (string, bool) {
		s := t.Record(i).EndStation
		return s.String, s.Valid
	})
	out.TopPair, out.TopPairCount, _ = Mode(n, func(i int) (model.StationPair, bool) {
		rec := t.Record(i)
		if !rec.StartStation.Valid || !rec.EndStation.Valid {
			return model.StationPair{}, false
		}
		return model.StationPair{Start: rec.StartStation.String, End: rec.EndStation.String}, true
	})
	return out, nil
}
