package trips

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bluele/gcache"
	log "github.com/sirupsen/logrus"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/source"
)

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// Loader reads city sources into tables. Loaded tables are cached per city.
type Loader struct {
	catalog config.Catalog
	cache   gcache.Cache
}

// NewLoader returns a loader for the catalog's cities. A cacheSize of zero
// disables caching.
func NewLoader(catalog config.Catalog, cacheSize int) *Loader {
	l := &Loader{catalog: catalog}
	if cacheSize > 0 {
		l.cache = gcache.New(cacheSize).LRU().Build()
	}
	return l
}

// Load returns every trip of a city. Any bad row fails the whole load.
func (l *Loader) Load(ctx context.Context, city string) (*Table, error) {
	key := cacheKey(city)
	if l.cache != nil {
		if cached, err := l.cache.Get(key); err == nil {
			log.WithField("city", key).Debug("trip data served from cache")
			return cached.(*Table), nil
		}
	}

	path, ok := l.catalog.CityPath(city)
	if !ok {
		return nil, &DataSourceError{City: city, Err: ErrUnknownCity}
	}
	raw, err := source.Read(ctx, path)
	if err != nil {
		return nil, &DataSourceError{City: city, Path: path, Err: err}
	}
	table, err := buildTable(raw)
	if err != nil {
		var dse *DataSourceError
		if errors.As(err, &dse) {
			dse.City = city
			dse.Path = path
		}
		return nil, err
	}

	log.WithFields(log.Fields{
		"city":       key,
		"path":       path,
		"rows":       table.Len(),
		"gender":     table.schema.Has(model.ColumnGender),
		"birth_year": table.schema.Has(model.ColumnBirthYear),
	}).Info("trip data loaded")

	if l.cache != nil {
		if err := l.cache.Set(key, table); err != nil {
			log.WithError(err).Warn("failed to cache trip data")
		}
	}
	return table, nil
}

// Invalidate drops a cached city table.
func (l *Loader) Invalidate(city string) {
	if l.cache != nil {
		l.cache.Remove(cacheKey(city))
	}
}

func cacheKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

type columnIndex map[string]int

func (c columnIndex) get(row []sql.NullString, column string) (sql.NullString, bool) {
	i, ok := c[column]
	if !ok || i >= len(row) {
		return sql.NullString{}, false
	}
	return row[i], true
}

func buildTable(raw source.Table) (*Table, error) {
	schema := model.NewSchema(raw.Header)
	index := make(columnIndex, len(raw.Header))
	for i, name := range raw.Header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, name := range model.RequiredColumns {
		if _, ok := index[name]; !ok {
			return nil, &DataSourceError{Column: name, Err: ErrMissingColumn}
		}
	}

	records := make([]model.TripRecord, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		rec, column, err := parseRecord(index, schema, row)
		if err != nil {
			return nil, &DataSourceError{Row: i + 1, Column: column, Err: err}
		}
		records = append(records, rec)
	}
	return &Table{schema: schema, records: records}, nil
}

func parseRecord(index columnIndex, schema model.Schema, row []sql.NullString) (model.TripRecord, string, error) {
	var rec model.TripRecord

	startRaw, _ := index.get(row, model.ColumnStartTime)
	start, err := parseTime(startRaw)
	if err != nil {
		return rec, model.ColumnStartTime, err
	}
	rec.StartTime = start
	rec.Month = int(start.Month())
	rec.Weekday = start.Weekday().String()
	rec.Hour = start.Hour()

	if schema.Has(model.ColumnEndTime) {
		endRaw, _ := index.get(row, model.ColumnEndTime)
		if endRaw.Valid {
			end, err := parseTime(endRaw)
			if err != nil {
				return rec, model.ColumnEndTime, err
			}
			rec.EndTime = &end
		}
	}

	durRaw, _ := index.get(row, model.ColumnTripDuration)
	rec.DurationSec, err = parseDuration(durRaw)
	if err != nil {
		return rec, model.ColumnTripDuration, err
	}

	rec.StartStation, _ = index.get(row, model.ColumnStartStation)
	rec.EndStation, _ = index.get(row, model.ColumnEndStation)
	rec.UserType, _ = index.get(row, model.ColumnUserType)
	if schema.Has(model.ColumnGender) {
		rec.Gender, _ = index.get(row, model.ColumnGender)
	}
	if schema.Has(model.ColumnBirthYear) {
		yearRaw, _ := index.get(row, model.ColumnBirthYear)
		rec.BirthYear, err = parseBirthYear(yearRaw)
		if err != nil {
			return rec, model.ColumnBirthYear, err
		}
	}

	for _, c := range row {
		if !c.Valid {
			rec.NullCells++
		}
	}
	return rec, "", nil
}

func parseTime(v sql.NullString) (time.Time, error) {
	if !v.Valid {
		return time.Time{}, ErrInvalidTimestamp
	}
	s := strings.TrimSpace(v.String)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

func parseDuration(v sql.NullString) (float64, error) {
	if !v.Valid {
		return 0, ErrInvalidDuration
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(v.String), 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, ErrInvalidDuration
	}
	return d, nil
}

func parseBirthYear(v sql.NullString) (sql.NullInt64, error) {
	if !v.Valid {
		return sql.NullInt64{}, nil
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(v.String), 64)
	if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
		return sql.NullInt64{}, ErrInvalidBirthYear
	}
	return sql.NullInt64{Int64: int64(math.Trunc(y)), Valid: true}, nil
}
