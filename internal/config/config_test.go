package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Data.Dir)
	assert.Empty(t, cfg.Cities)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[data]
dir = "/srv/bikeshare"
page-size = 10

[filters]
city = "chicago"
month = "march"

[cities]
"Boston" = "boston.db"

[log]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Data.Dir)
	assert.Equal(t, "/srv/bikeshare", *cfg.Data.Dir)
	require.NotNil(t, cfg.Data.PageSize)
	assert.Equal(t, 10, *cfg.Data.PageSize)
	require.NotNil(t, cfg.Filters.City)
	assert.Equal(t, "chicago", *cfg.Filters.City)
	require.NotNil(t, cfg.Filters.Month)
	assert.Equal(t, "march", *cfg.Filters.Month)
	assert.Nil(t, cfg.Filters.Day)
	assert.Equal(t, map[string]string{"Boston": "boston.db"}, cfg.Cities)
	require.NotNil(t, cfg.Log.Level)
	assert.Equal(t, "debug", *cfg.Log.Level)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
data:
  page-size: 7
filters:
  day: friday
cities:
  denver: denver.xlsx
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Data.PageSize)
	assert.Equal(t, 7, *cfg.Data.PageSize)
	require.NotNil(t, cfg.Filters.Day)
	assert.Equal(t, "friday", *cfg.Filters.Day)
	assert.Equal(t, "denver.xlsx", cfg.Cities["denver"])
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"page size": "[data]\npage-size = 0\n",
		"log level": "[log]\nlevel = \"loud\"\n",
		"city file": "[cities]\nboston = \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "config.toml", body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoadConfigDecodeError(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "config.toml", "[data\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode config")
}

func TestCatalogDefaults(t *testing.T) {
	dir := "/data"
	c := NewCatalog(FileConfig{Data: DataConfig{Dir: &dir}})

	assert.Equal(t, []string{"chicago", "new york city", "washington"}, c.Cities())
	path, ok := c.CityPath("  New York City ")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "new_york_city.csv"), path)

	_, ok = c.CityPath("boston")
	assert.False(t, ok)
}

func TestCatalogOverrides(t *testing.T) {
	dir := "/data"
	c := NewCatalog(FileConfig{
		Data: DataConfig{Dir: &dir},
		Cities: map[string]string{
			"Boston":  "boston.db",
			"chicago": "/archive/chicago.xlsx",
		},
	})

	assert.Equal(t, []string{"boston", "chicago", "new york city", "washington"}, c.Cities())
	path, ok := c.CityPath("boston")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "boston.db"), path)
	path, ok = c.CityPath("Chicago")
	require.True(t, ok)
	assert.Equal(t, "/archive/chicago.xlsx", path)
}

func TestCatalogDataDirFromEnv(t *testing.T) {
	t.Setenv("BIKESHARE_DATA_DIR", "/env/data")
	c := NewCatalog(FileConfig{})
	path, ok := c.CityPath("washington")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/env/data", "washington.csv"), path)
}

func TestCatalogMonthsAndDays(t *testing.T) {
	c := NewCatalog(FileConfig{})

	idx, ok := c.MonthIndex("March")
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	idx, ok = c.MonthIndex("june")
	require.True(t, ok)
	assert.Equal(t, 6, idx)
	_, ok = c.MonthIndex("july")
	assert.False(t, ok)
	_, ok = c.MonthIndex(All)
	assert.False(t, ok)

	assert.True(t, c.HasDay("Friday"))
	assert.False(t, c.HasDay("saturday"))
	assert.Len(t, c.Months(), 6)
	assert.Len(t, c.Days(), 5)
}

func TestCatalogReturnsCopies(t *testing.T) {
	c := NewCatalog(FileConfig{})
	months := c.Months()
	months[0] = "smarch"
	_, ok := c.MonthIndex("january")
	assert.True(t, ok)
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "bikeshare", "config.toml"), DefaultConfigPath())
}
