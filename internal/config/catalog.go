package config

import (
	"path/filepath"
	"sort"
	"strings"
)

// All disables a month or day predicate.
const All = "all"

var defaultCities = map[string]string{
	"chicago":       "chicago.csv",
	"new york city": "new_york_city.csv",
	"washington":    "washington.csv",
}

// The datasets only cover the first half of the year.
var defaultMonths = []string{"january", "february", "march", "april", "may", "june"}

var defaultDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// Catalog lists the selectable cities, months and days.
type Catalog struct {
	cities map[string]string
	names  []string
	months []string
	days   []string
}

// NewCatalog merges the built-in cities with config overrides. Relative
// file names are resolved against the configured data directory.
func NewCatalog(cfg FileConfig) Catalog {
	dir := DefaultDataDir()
	if cfg.Data.Dir != nil {
		dir = *cfg.Data.Dir
	}
	files := make(map[string]string, len(defaultCities)+len(cfg.Cities))
	for name, file := range defaultCities {
		files[name] = file
	}
	for name, file := range cfg.Cities {
		files[normalize(name)] = file
	}

	c := Catalog{
		cities: make(map[string]string, len(files)),
		months: append([]string(nil), defaultMonths...),
		days:   append([]string(nil), defaultDays...),
	}
	for name, file := range files {
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		c.cities[name] = file
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c
}

// Cities returns the known city names in sorted order.
func (c Catalog) Cities() []string {
	return append([]string(nil), c.names...)
}

// CityPath returns the source file for a city.
func (c Catalog) CityPath(city string) (string, bool) {
	path, ok := c.cities[normalize(city)]
	return path, ok
}

// Months returns the selectable month names.
func (c Catalog) Months() []string {
	return append([]string(nil), c.months...)
}

// Days returns the selectable day names.
func (c Catalog) Days() []string {
	return append([]string(nil), c.days...)
}

// MonthIndex returns the 1-based calendar month for a selectable month name.
func (c Catalog) MonthIndex(month string) (int, bool) {
	month = normalize(month)
	for i, m := range c.months {
		if m == month {
			return i + 1, true
		}
	}
	return 0, false
}

// HasDay reports whether day is selectable.
func (c Catalog) HasDay(day string) bool {
	day = normalize(day)
	for _, d := range c.days {
		if d == day {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
