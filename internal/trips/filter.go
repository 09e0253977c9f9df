package trips

import (
	"strings"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/model"
)

// Filter narrows tables to a month and weekday selection.
type Filter struct {
	catalog config.Catalog
}

// NewFilter returns a filter that accepts the catalog's months and days.
func NewFilter(catalog config.Catalog) *Filter {
	return &Filter{catalog: catalog}
}

// Apply returns a new table with the trips matching spec. The input table is
// left untouched. Month and day predicates combine with AND.
func (f *Filter) Apply(t *Table, spec model.FilterSpec) (*Table, error) {
	month := strings.ToLower(strings.TrimSpace(spec.Month))
	day := strings.ToLower(strings.TrimSpace(spec.Day))

	monthIdx := 0
	if month != config.All {
		idx, ok := f.catalog.MonthIndex(month)
		if !ok {
			return nil, &InvalidFilterError{Field: "month", Value: spec.Month}
		}
		monthIdx = idx
	}
	if day != config.All && !f.catalog.HasDay(day) {
		return nil, &InvalidFilterError{Field: "day", Value: spec.Day}
	}

	kept := make([]model.TripRecord, 0, len(t.records))
	for _, rec := range t.records {
		if monthIdx != 0 && rec.Month != monthIdx {
			continue
		}
		if day != config.All && !strings.EqualFold(rec.Weekday, day) {
			continue
		}
		kept = append(kept, rec)
	}
	return &Table{schema: t.schema, records: kept}, nil
}
