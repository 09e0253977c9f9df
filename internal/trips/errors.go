package trips

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCity      = errors.New("unknown city")
	ErrMissingColumn    = errors.New("missing required column")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidDuration  = errors.New("invalid trip duration")
	ErrInvalidBirthYear = errors.New("invalid birth year")
)

// DataSourceError reports a city source that could not be loaded. Row is the
// 1-based data row (header excluded), or 0 when the whole source is at fault.
type DataSourceError struct {
	City   string
	Path   string
	Row    int
	Column string
	Err    error
}

func (e *DataSourceError) Error() string {
	msg := fmt.Sprintf("data source for %q", e.City)
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	return msg + ": " + e.Err.Error()
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// InvalidFilterError reports a month or day outside the selectable values.
type InvalidFilterError struct {
	Field string
	Value string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid %s filter %q", e.Field, e.Value)
}
