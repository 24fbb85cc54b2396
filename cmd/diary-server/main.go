package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/diary/internal/bootstrap"
	"github.com/at-ishikawa/diary/internal/config"
	"github.com/at-ishikawa/diary/internal/database"
	"github.com/at-ishikawa/diary/internal/diary"
	"github.com/at-ishikawa/diary/internal/logging"
	"github.com/at-ishikawa/diary/internal/server"
	"github.com/at-ishikawa/diary/internal/statistics"
	"github.com/at-ishikawa/diary/internal/upload"
	"github.com/at-ishikawa/diary/internal/user"
)

var configFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "diary-server",
		Short:         "Diary HTTP API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	return rootCmd
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("config.Load() > %w", err)
	}
	if err := logging.Setup(cfg.Log, os.Stdout); err != nil {
		return fmt.Errorf("logging.Setup() > %w", err)
	}
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	app := bootstrap.New(bootstrap.WithShutdownTimeout(time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second))

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook("database", func(context.Context) error {
		return db.Close()
	})
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("database.Migrate() > %w", err)
	}

	store := upload.NewStore(cfg.Upload.Directory, cfg.Upload.MaxSizeBytes)
	diaryRepo := diary.NewDBRepository(db)
	diaries, err := diary.NewService(diaryRepo, diary.WithImageRemover(store))
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("diary.NewService() > %w", err)
	}
	users := user.NewService(user.NewDBRepository(db))
	engine := statistics.NewEngine(diaryRepo)

	handler := server.New(users, diaries, engine, store, cfg.Server.CORS.AllowedOrigins)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		log.Info().
			Str("addr", srv.Addr).
			Str("database", db.DriverName()).
			Str("uploads", store.Dir()).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe() > %w", err)
		}
		return nil
	})
}
