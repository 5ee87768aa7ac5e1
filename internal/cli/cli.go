package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pfrederiksen/exam-calendar/internal/config"
	"github.com/pfrederiksen/exam-calendar/internal/exam"
	"github.com/pfrederiksen/exam-calendar/internal/logger"
	"github.com/pfrederiksen/exam-calendar/internal/scraper"
	"github.com/pfrederiksen/exam-calendar/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is reported by --version; set at build time.
var Version = "dev"

// options holds the persistent flags and the config they resolve to.
type options struct {
	url        string
	dataDir    string
	configPath string
	logLevel   string
	format     string
	offline    bool
	verbose    bool

	cfg *config.Config
	// parentLog is the default logger before setup replaced it.
	parentLog *logger.Logger
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "exam-calendar",
		Short: "Look up NCSU final exam dates and times",
		Long: `A CLI tool to look up final exam dates and times from the NCSU exam calendar.
Extracts every semester's exam table, saves a snapshot for offline use and
exports exams to iCalendar files.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Default().Debug("Run metrics", logger.MetricsSnapshot())
			if opts.parentLog != nil {
				logger.SetDefault(opts.parentLog)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.url, "url", scraper.ExamCalendarURL, "Exam calendar page URL")
	flags.StringVar(&opts.dataDir, "data-dir", config.DefaultDataDir, "Data directory for the saved catalog")
	flags.StringVar(&opts.configPath, "config", "", "Path to a JSON config file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.format, "format", "text", "Output format: text or json")
	flags.BoolVar(&opts.offline, "offline", false, "Read the saved catalog instead of fetching")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newFetchCmd(opts),
		newSemestersCmd(opts),
		newClassesCmd(opts),
		newLookupCmd(opts),
	)

	return cmd
}

// setup resolves config, applying explicitly set flags last, and points the
// default logger at stderr so stdout stays machine-readable. The previous
// default logger is restored after a successful run.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.URL = o.url
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = o.dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if o.verbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := o.outputFormat(); err != nil {
		return err
	}

	o.parentLog = logger.Default()
	logger.SetDefault(logger.New(cfg.Level(), cmd.ErrOrStderr()))
	logger.Debug("Configuration loaded", logger.Fields{
		"url":      cfg.URL,
		"data_dir": cfg.DataDir,
		"timezone": cfg.Timezone,
		"offline":  o.offline,
	})

	o.cfg = cfg
	return nil
}

func (o *options) outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(o.format))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", o.format)
	}
	return format, nil
}

func (o *options) storage() (*storage.Storage, error) {
	store, err := storage.New(o.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, nil
}

func (o *options) fetchCatalog(ctx context.Context) (*exam.Catalog, error) {
	sc := scraper.New(scraper.WithURL(o.cfg.URL))
	logger.Info("Fetching exam calendar", logger.Fields{"url": sc.URL()})

	catalog, err := sc.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching exam calendar: %w", err)
	}
	return catalog, nil
}

// catalog returns the saved catalog when offline and a freshly fetched one
// otherwise.
func (o *options) catalog(ctx context.Context) (*exam.Catalog, error) {
	if !o.offline {
		return o.fetchCatalog(ctx)
	}

	store, err := o.storage()
	if err != nil {
		return nil, err
	}
	catalog, err := store.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading saved catalog (run 'exam-calendar fetch' first): %w", err)
	}
	return catalog, nil
}

// semester finds a semester's calendar by its full label or by the label
// without its " Exam Calendar" suffix, ignoring case.
func semester(catalog *exam.Catalog, name string) (string, exam.Calendar, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("--semester is required")
	}
	if cal, ok := catalog.Calendar(name); ok {
		return name, cal, nil
	}

	for _, label := range catalog.Semesters() {
		short := strings.TrimSuffix(label, " Exam Calendar")
		if strings.EqualFold(label, name) || strings.EqualFold(short, name) {
			cal, _ := catalog.Calendar(label)
			return label, cal, nil
		}
	}
	return "", nil, fmt.Errorf("unknown semester %q (available: %s)", name, strings.Join(catalog.Semesters(), "; "))
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
