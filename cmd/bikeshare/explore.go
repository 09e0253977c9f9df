package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/stats"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

// explorer runs the question and answer loop of the explore command.
type explorer struct {
	s   *session
	in  *bufio.Scanner
	out io.Writer
}

func newExplorer(s *session, in io.Reader, out io.Writer) *explorer {
	return &explorer{s: s, in: bufio.NewScanner(in), out: out}
}

// run keeps exploring until the user declines a restart or input ends.
func (e *explorer) run(ctx context.Context) error {
	for {
		again, err := e.round(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (e *explorer) round(ctx context.Context) (bool, error) {
	e.println("Hello! Let's explore some US bikeshare data!")

	cities := e.s.catalog.Cities()
	city, err := e.ask(
		fmt.Sprintf("Which city would you like to explore? (%s)", strings.Join(cities, ", ")),
		func(v string) bool { _, ok := e.s.catalog.CityPath(v); return ok },
	)
	if err != nil {
		return false, err
	}
	month, err := e.ask(
		fmt.Sprintf("Which month? (%s, %s)", config.All, strings.Join(e.s.catalog.Months(), ", ")),
		func(v string) bool { _, ok := e.s.catalog.MonthIndex(v); return v == config.All || ok },
	)
	if err != nil {
		return false, err
	}
	day, err := e.ask(
		fmt.Sprintf("Which day of the week? (%s, %s)", config.All, strings.Join(e.s.catalog.Days(), ", ")),
		func(v string) bool { return v == config.All || e.s.catalog.HasDay(v) },
	)
	if err != nil {
		return false, err
	}

	e.s.city = city
	e.s.spec = model.FilterSpec{Month: month, Day: day}
	selected, err := e.s.selection(ctx)
	if err != nil {
		return false, err
	}
	report := stats.BuildReport(city, e.s.spec, selected)
	if err := stats.RenderReport(e.out, report, stats.RenderOptions{Timings: true}); err != nil {
		return false, fmt.Errorf("failed to write report: %w", err)
	}
	if err := e.showRaw(selected); err != nil {
		return false, err
	}
	return e.confirm("Would you like to restart? Enter yes or no.")
}

// showRaw pages through the selection while the user keeps answering yes.
func (e *explorer) showRaw(t *trips.Table) error {
	question := fmt.Sprintf("Would you like to see %d lines of raw data? Enter yes or no.", e.s.pageSize)
	for offset := 0; ; offset += e.s.pageSize {
		yes, err := e.confirm(question)
		if err != nil || !yes {
			return err
		}
		page := t.Page(offset, e.s.pageSize)
		if len(page) == 0 {
			e.println("No more trips in this selection.")
			return nil
		}
		if err := stats.RenderTrips(e.out, t.Schema(), page); err != nil {
			return fmt.Errorf("failed to write trips: %w", err)
		}
		question = fmt.Sprintf("Would you like to see %d more lines? Enter yes or no.", e.s.pageSize)
	}
}

func (e *explorer) confirm(question string) (bool, error) {
	answer, err := e.ask(question, func(v string) bool {
		switch v {
		case "yes", "y", "no", "n":
			return true
		}
		return false
	})
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(answer, "y"), nil
}

// ask repeats question until valid accepts the normalized answer.
func (e *explorer) ask(question string, valid func(string) bool) (string, error) {
	for {
		e.println(question)
		if !e.in.Scan() {
			if err := e.in.Err(); err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			return "", io.EOF
		}
		answer := strings.ToLower(strings.TrimSpace(e.in.Text()))
		if valid(answer) {
			return answer, nil
		}
		e.println(fmt.Sprintf("Sorry, %q is not a valid choice. Please try again.", answer))
	}
}

func (e *explorer) println(line string) {
	_, _ = fmt.Fprintln(e.out, line)
}
