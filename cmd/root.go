package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jiashen-meow/feelingdiary/internal/config"
	"github.com/jiashen-meow/feelingdiary/internal/journal"
	"github.com/jiashen-meow/feelingdiary/internal/logging"
	"github.com/jiashen-meow/feelingdiary/internal/storage"
)

var cfgFile string

// Resolved in setup before any subcommand runs.
var (
	cfg      config.Config
	logger   = zap.NewNop()
	store    *storage.Store
	registry *prometheus.Registry
)

var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "FeelingDiary: a private, file-based journal",
	Long: `diary is a single-binary journal for free-text entries with tags.
All entries are stored in one human-readable JSON file, ~/.feelingdiary/entries.json.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	writeMetrics()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.feelingdiary/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding entries.json")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(config.Options{File: cfgFile, Flags: cmd.Root().PersistentFlags()})
	if err != nil {
		return usageError(err)
	}
	logger, err = logging.New(cfg.Log)
	if err != nil {
		return usageError(err)
	}
	registry = prometheus.NewRegistry()
	store = storage.New(cfg.EntriesPath(),
		storage.WithLogger(logging.Component(logger, "store")),
		storage.WithMetrics(storage.NewMetrics(registry)),
	)
	return nil
}

// writeMetrics dumps the store counters to the configured textfile. Failure
// only logs: the command itself already succeeded or failed on its own.
func writeMetrics() {
	if registry == nil || cfg.MetricsFile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
		logger.Warn("writing metrics file", zap.String("path", cfg.MetricsFile), zap.Error(err))
	}
}

// openJournal loads the journal, seeding the sample entries on first run.
func openJournal(cmd *cobra.Command) (*journal.Manager, error) {
	m, err := journal.Open(store,
		journal.WithLogger(logging.Component(logger, "journal")),
		journal.WithSamples(cfg.SeedSamples),
	)
	if err != nil {
		return nil, storageError(err)
	}
	if err := m.LoadErr(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	m.Watch(func(ev journal.Event) {
		logger.Debug("journal changed",
			zap.Stringer("op", ev.Op),
			zap.Stringer("id", ev.Entry.ID),
			zap.Int("count", len(ev.Entries)),
		)
	})
	return m, nil
}

// exitError carries the process exit status: 1 for usage errors, 2 for
// storage errors.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error   { return &exitError{code: 1, err: err} }
func storageError(err error) error { return &exitError{code: 2, err: err} }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}
