// Package main provides the CLI entrypoint for bikeshare.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/stats"
	"github.com/verte-zerg/bikeshare/internal/statsui"
	"github.com/verte-zerg/bikeshare/internal/trips"
)

const (
	defaultPageSize  = 5
	defaultLogLevel  = "warn"
	defaultCacheSize = 8
)

var (
	selCity     string
	selMonth    string
	selDay      string
	selPageSize int
	logLevel    string

	reportRaw       bool
	reportHistogram bool
	reportTimings   bool
	reportWidth     int
)

// session is the resolved state shared by every data command.
type session struct {
	catalog  config.Catalog
	loader   *trips.Loader
	filter   *trips.Filter
	city     string
	spec     model.FilterSpec
	pageSize int
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bikeshare",
		Short:         "Explore US bikeshare trip statistics",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReportCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&selCity, "city", "", "city to analyze (see: bikeshare cities)")
	flags.StringVar(&selMonth, "month", config.All, "month filter (all, january..june)")
	flags.StringVar(&selDay, "day", config.All, "day filter (all, monday..friday)")
	flags.IntVar(&selPageSize, "page-size", defaultPageSize, "raw trips shown per page")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.Flags().BoolVar(&reportRaw, "raw", false, "print the first page of raw trips after the report")
	rootCmd.Flags().BoolVar(&reportHistogram, "histogram", false, "print trips by start hour")
	rootCmd.Flags().BoolVar(&reportTimings, "timings", false, "print how long each section took")
	rootCmd.Flags().IntVar(&reportWidth, "width", 0, "histogram width (default: terminal width)")

	rootCmd.AddCommand(newCitiesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newExploreCmd())
	rootCmd.AddCommand(newViewCmd())

	return rootCmd
}

func initLogger(level string) error {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   false,
	})
	log.SetLevel(parsed)
	return nil
}

// loadSession reads the config file, merges it under the flags and sets up
// logging. The city is validated only when requireCity is set.
func loadSession(cmd *cobra.Command, requireCity bool) (*session, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "city", &selCity, fileCfg.Filters.City)
	applyStringConfig(cmd, "month", &selMonth, fileCfg.Filters.Month)
	applyStringConfig(cmd, "day", &selDay, fileCfg.Filters.Day)
	applyIntConfig(cmd, "page-size", &selPageSize, fileCfg.Data.PageSize)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	if err := initLogger(logLevel); err != nil {
		return nil, fmt.Errorf("invalid --log-level value: %w", err)
	}
	if selPageSize <= 0 {
		return nil, fmt.Errorf("--page-size must be > 0")
	}

	catalog := config.NewCatalog(fileCfg)
	s := &session{
		catalog:  catalog,
		loader:   trips.NewLoader(catalog, defaultCacheSize),
		filter:   trips.NewFilter(catalog),
		city:     strings.ToLower(strings.TrimSpace(selCity)),
		spec:     model.FilterSpec{Month: normalizeChoice(selMonth), Day: normalizeChoice(selDay)},
		pageSize: selPageSize,
	}
	if err := validateSelection(catalog, s.spec); err != nil {
		return nil, err
	}
	if requireCity {
		if err := validateCity(catalog, s.city); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// selection loads the session city and applies the month and day filter.
func (s *session) selection(ctx context.Context) (*trips.Table, error) {
	table, err := s.loader.Load(ctx, s.city)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}
	selected, err := s.filter.Apply(table, s.spec)
	if err != nil {
		return nil, fmt.Errorf("failed to filter trips: %w", err)
	}
	return selected, nil
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd, true)
	if err != nil {
		return err
	}
	selected, err := s.selection(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report := stats.BuildReport(s.city, s.spec, selected)
	opts := stats.RenderOptions{Width: reportWidth, Histogram: reportHistogram, Timings: reportTimings}
	if err := stats.RenderReport(out, report, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if reportRaw && selected.Len() > 0 {
		if err := stats.RenderTrips(out, selected.Schema(), selected.Page(0, s.pageSize)); err != nil {
			return fmt.Errorf("failed to write trips: %w", err)
		}
	}
	return nil
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Browse stats and raw trips in a TUI",
		Args:  cobra.NoArgs,
		RunE:  runViewCmd,
	}
}

func runViewCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd, true)
	if err != nil {
		return err
	}
	table, err := s.loader.Load(context.Background(), s.city)
	if err != nil {
		return fmt.Errorf("failed to load trips: %w", err)
	}
	ui := statsui.NewModel(s.city, table, s.filter, s.spec, s.pageSize)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Answer prompts to explore a city, with restart",
		Args:  cobra.NoArgs,
		RunE:  runExploreCmd,
	}
}

func runExploreCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd, false)
	if err != nil {
		return err
	}
	ex := newExplorer(s, cmd.InOrStdin(), cmd.OutOrStdout())
	return ex.run(context.Background())
}

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List configured cities and their data files",
		Args:  cobra.NoArgs,
		RunE:  runCitiesCmd,
	}
}

func runCitiesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	catalog := config.NewCatalog(fileCfg)
	for _, city := range catalog.Cities() {
		path, _ := catalog.CityPath(city)
		status := "ok"
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			status = "missing"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-8s %s\n", city, status, path); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func normalizeChoice(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return config.All
	}
	return s
}

func validateCity(catalog config.Catalog, city string) error {
	if city == "" {
		return fmt.Errorf("--city is required (available: %s)", strings.Join(catalog.Cities(), ", "))
	}
	if _, ok := catalog.CityPath(city); !ok {
		return fmt.Errorf("unknown city %q (available: %s)", city, strings.Join(catalog.Cities(), ", "))
	}
	return nil
}

func validateSelection(catalog config.Catalog, spec model.FilterSpec) error {
	if spec.Month != config.All {
		if _, ok := catalog.MonthIndex(spec.Month); !ok {
			return fmt.Errorf("invalid --month value %q (available: all, %s)", spec.Month, strings.Join(catalog.Months(), ", "))
		}
	}
	if spec.Day != config.All && !catalog.HasDay(spec.Day) {
		return fmt.Errorf("invalid --day value %q (available: all, %s)", spec.Day, strings.Join(catalog.Days(), ", "))
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# bikeshare configuration
# Uncomment a value to enable it. CLI flags override config values.

[data]
# dir = "/path/to/data"   # Directory holding the city files (default: $BIKESHARE_DATA_DIR or .)
# page-size = %d           # Raw trips shown per page

[filters]
# city = "chicago"         # Default city
# month = %q            # all, january..june
# day = %q              # all, monday..friday

[cities]
# boston = "boston.sqlite" # Extra cities or overrides (.csv, .db/.sqlite/.sqlite3, .xlsx)

[log]
# level = %q            # debug, info, warn, error
`,
		defaultPageSize,
		config.All,
		config.All,
		defaultLogLevel,
	)
}
