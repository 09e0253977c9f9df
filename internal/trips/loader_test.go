package trips

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/model"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1423854,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0
955915,2017-05-25 18:19:03,2017-05-25 18:45:53,1610,Theater on the Lake,Sheffield Ave & Waveland Ave,Subscriber,Female,1992.0
9031,2017-01-04 08:27:49,2017-01-04 08:34:45,416,May St & Taylor St,Wood St & Taylor St,Subscriber,,
`

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
482740,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Customer
`

func newTestLoader(t *testing.T, files map[string]string, cacheSize int) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	cities := map[string]string{}
	for city, content := range files {
		name := filepath.Base(city) + ".csv"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
		cities[city] = name
	}
	catalog := config.NewCatalog(config.FileConfig{
		Data:   config.DataConfig{Dir: &dir},
		Cities: cities,
	})
	return NewLoader(catalog, cacheSize), dir
}

func TestLoadDerivesCalendarFields(t *testing.T) {
	loader, _ := newTestLoader(t, map[string]string{"chicago": chicagoCSV}, 0)

	table, err := loader.Load(context.Background(), "Chicago")
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	first := table.Record(0)
	assert.Equal(t, 6, first.Month)
	assert.Equal(t, "Friday", first.Weekday)
	assert.Equal(t, 15, first.Hour)
	assert.Equal(t, 321.0, first.DurationSec)
	assert.Equal(t, "Wood St & Hubbard St", first.StartStation.String)
	require.NotNil(t, first.EndTime)
	assert.Equal(t, int64(1992), first.BirthYear.Int64)
	assert.Equal(t, 0, first.NullCells)

	last := table.Record(2)
	assert.Equal(t, "Wednesday", last.Weekday)
	assert.False(t, last.Gender.Valid)
	assert.False(t, last.BirthYear.Valid)
	assert.Equal(t, 2, last.NullCells)
}

func TestLoadXLSXWithDateCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chicago.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	start := time.Date(2017, time.June, 23, 15, 9, 32, 0, time.UTC)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{start, start.Add(5 * time.Minute), 300, "Canal St", "Clark St", "Subscriber"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	catalog := config.NewCatalog(config.FileConfig{
		Data:   config.DataConfig{Dir: &dir},
		Cities: map[string]string{"chicago": "chicago.xlsx"},
	})
	table, err := NewLoader(catalog, 0).Load(context.Background(), "chicago")
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	rec := table.Record(0)
	assert.True(t, rec.StartTime.Equal(start), "start time %s", rec.StartTime)
	assert.Equal(t, 6, rec.Month)
	assert.Equal(t, "Friday", rec.Weekday)
	assert.Equal(t, 15, rec.Hour)
	require.NotNil(t, rec.EndTime)
	assert.Equal(t, "2017-06-23 15:14:32", rec.EndTime.Format("2006-01-02 15:04:05"))
}

func TestLoadDetectsOptionalColumnsFromSchema(t *testing.T) {
	loader, _ := newTestLoader(t, map[string]string{
		"chicago":    chicagoCSV,
		"washington": washingtonCSV,
	}, 0)

	chicago, err := loader.Load(context.Background(), "chicago")
	require.NoError(t, err)
	assert.True(t, chicago.Schema().Has(model.ColumnGender))
	assert.True(t, chicago.Schema().Has(model.ColumnBirthYear))

	washington, err := loader.Load(context.Background(), "washington")
	require.NoError(t, err)
	assert.False(t, washington.Schema().Has(model.ColumnGender))
	assert.False(t, washington.Schema().Has(model.ColumnBirthYear))
	assert.True(t, washington.Schema().Has(model.ColumnEndTime))
	assert.InDelta(t, 489.066, washington.Record(0).DurationSec, 1e-9)
}

func TestLoadRejectsNegativeDuration(t *testing.T) {
	content := `Start Time,Trip Duration,Start Station,End Station,User Type
2017-01-02 09:00:00,600,A,B,Subscriber
2017-01-02 10:00:00,-5,A,B,Subscriber
`
	loader, _ := newTestLoader(t, map[string]string{"chicago": content}, 0)

	table, err := loader.Load(context.Background(), "chicago")
	assert.Nil(t, table)
	require.ErrorIs(t, err, ErrInvalidDuration)
	var dse *DataSourceError
	require.ErrorAs(t, err, &dse)
	assert.Equal(t, 2, dse.Row)
	assert.Equal(t, model.ColumnTripDuration, dse.Column)
	assert.Equal(t, "chicago", dse.City)
}

func TestLoadRejectsBadRows(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "missing duration",
			content: "Start Time,Trip Duration,Start Station,End Station,User Type\n2017-01-02 09:00:00,,A,B,Subscriber\n",
			want:    ErrInvalidDuration,
		},
		{
			name:    "unparsable timestamp",
			content: "Start Time,Trip Duration,Start Station,End Station,User Type\nyesterday,60,A,B,Subscriber\n",
			want:    ErrInvalidTimestamp,
		},
		{
			name:    "missing required column",
			content: "Start Time,Trip Duration,Start Station,End Station\n2017-01-02 09:00:00,60,A,B\n",
			want:    ErrMissingColumn,
		},
		{
			name:    "bad birth year",
			content: "Start Time,Trip Duration,Start Station,End Station,User Type,Birth Year\n2017-01-02 09:00:00,60,A,B,Subscriber,old\n",
			want:    ErrInvalidBirthYear,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newTestLoader(t, map[string]string{"chicago": tt.content}, 0)
			_, err := loader.Load(context.Background(), "chicago")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadMissingFileAndUnknownCity(t *testing.T) {
	loader, dir := newTestLoader(t, map[string]string{"chicago": chicagoCSV}, 0)
	require.NoError(t, os.Remove(filepath.Join(dir, "chicago.csv")))

	_, err := loader.Load(context.Background(), "chicago")
	var dse *DataSourceError
	require.ErrorAs(t, err, &dse)
	assert.True(t, os.IsNotExist(dse.Err))

	_, err = loader.Load(context.Background(), "paris")
	assert.ErrorIs(t, err, ErrUnknownCity)
}

func TestLoadCachesPerCity(t *testing.T) {
	hook := test.NewGlobal()
	loader, dir := newTestLoader(t, map[string]string{"chicago": chicagoCSV}, 4)

	first, err := loader.Load(context.Background(), "chicago")
	require.NoError(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "trip data loaded", hook.LastEntry().Message)

	require.NoError(t, os.Remove(filepath.Join(dir, "chicago.csv")))
	second, err := loader.Load(context.Background(), " CHICAGO ")
	require.NoError(t, err)
	assert.Same(t, first, second)

	loader.Invalidate("chicago")
	_, err = loader.Load(context.Background(), "chicago")
	assert.Error(t, err)
}
