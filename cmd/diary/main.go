package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/diary/internal/config"
	"github.com/at-ishikawa/diary/internal/database"
	"github.com/at-ishikawa/diary/internal/logging"
)

var (
	configFile string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "diary",
		Short:         "Maintenance commands for the diary service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	rootCommand.AddCommand(
		newMigrateCommand(),
		newUserCommand(),
		newStatsCommand(),
		newExportCommand(),
	)
	return rootCommand
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.Load() > %w", err)
	}
	// Command output goes to stdout, so logs are kept on stderr.
	if err := logging.Setup(cfg.Log, os.Stderr); err != nil {
		return nil, fmt.Errorf("logging.Setup() > %w", err)
	}
	return cfg, nil
}

// openDatabase loads the configuration and returns a migrated connection.
func openDatabase(ctx context.Context) (*config.Config, *sqlx.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	return cfg, db, nil
}
