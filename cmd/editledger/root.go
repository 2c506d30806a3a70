package main

import (
	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/comparator"
	"github.com/alansmodic/edit-ledger/internal/config"
	"github.com/alansmodic/edit-ledger/internal/datastore"
	"github.com/alansmodic/edit-ledger/internal/logger"
	"github.com/alansmodic/edit-ledger/internal/orchestrator"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root has set up
type app struct {
	configPath string
	logLevel   string

	cfg    *config.GlobalConfig
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "editledger",
		Short: "Edit Ledger: word-level revision diffs with media change tracking",
		Long: `editledger compares revisions of a post and reports word-level
differences per field plus the media references added or removed.

It can compare two files directly, keep a revision ledger in SQLite,
serve the ledger over HTTP and export it to parquet.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML/JSON config file (default: search EDITLEDGER_CONFIG_PATH, cwd, executable dir)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(
		newCompareCmd(a),
		newServeCmd(a),
		newRevisionsCmd(a),
		newExportCmd(a),
	)
	return root
}

// setup loads and validates configuration, then builds the logger
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	bootstrap := zerolog.New(cmd.ErrOrStderr()).Level(zerolog.WarnLevel)

	cfg, err := config.LoadGlobalConfig(a.configPath, bootstrap)
	if err != nil {
		return errorwrapper.WrapError(err, "could not load config")
	}
	if a.logLevel != "" {
		cfg.LogConfig.LogLevel = a.logLevel
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return errorwrapper.WrapError(err, "configuration validation failed")
	}

	built, err := logger.NewLoggerBuilder().
		WithConsoleOutput(cmd.ErrOrStderr()).
		WithConfig(cfg.LogConfig).
		Build()
	if err != nil {
		return errorwrapper.WrapError(err, "could not initialize logger")
	}

	a.cfg = cfg
	a.logger = *built.GetZerolog()
	a.logger.Debug().Str("command", cmd.CommandPath()).Msg("Configuration loaded")
	return nil
}

func (a *app) newComparator() (*comparator.Comparator, error) {
	return comparator.NewComparator(a.cfg, a.logger)
}

// openLedger opens the revision store and wires the orchestrator over it.
// The caller must Close the returned store.
func (a *app) openLedger() (*orchestrator.LedgerOrchestrator, *datastore.RevisionStore, error) {
	store, err := datastore.NewRevisionStore(a.cfg.StorageConfig, a.logger)
	if err != nil {
		return nil, nil, err
	}
	cmp, err := a.newComparator()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	ledger, err := orchestrator.NewLedgerOrchestrator(store, cmp, a.logger)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return ledger, store, nil
}
