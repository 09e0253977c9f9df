package stats

import (
	"database/sql"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

// Users counts user types and, when the source has the columns, genders and
// birth years. It never fails; an empty table gives empty counts.
func Users(t *trips.Table) model.UserStats {
	schema := t.Schema()
	n := t.Len()
	out := model.UserStats{
		TypeCounts: categoryCounts(n, func(i int) sql.NullString { return t.Record(i).UserType }),
	}

	if schema.Has(model.ColumnGender) {
		missing := 0
		for i := 0; i < n; i++ {
			missing += t.Record(i).NullCells
		}
		out.Gender = &model.GenderStats{
			Counts:        categoryCounts(n, func(i int) sql.NullString { return t.Record(i).Gender }),
			MissingValues: missing,
		}
	}

	if schema.Has(model.ColumnBirthYear) {
		years := &model.BirthYearStats{}
		for i := 0; i < n; i++ {
			y := t.Record(i).BirthYear
			if !y.Valid {
				continue
			}
			year := int(y.Int64)
			if years.Known == 0 || year < years.Earliest {
				years.Earliest = year
			}
			if years.Known == 0 || year > years.MostRecent {
				years.MostRecent = year
			}
			years.Known++
		}
		years.MostCommon, _, _ = Mode(n, func(i int) (int, bool) {
			y := t.Record(i).BirthYear
			return int(y.Int64), y.Valid
		})
		out.BirthYear = years
	}
	return out
}

func categoryCounts(n int, value func(i int) sql.NullString) []model.CategoryCount {
	groups := GroupCounts(n, func(i int) (string, bool) {
		v := value(i)
		return v.String, v.Valid
	})
	out := make([]model.CategoryCount, len(groups))
	for i, g := range groups {
		out[i] = model.CategoryCount{Value: g.Key, Count: g.Count}
	}
	return out
}
