package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lueurxax/glint/internal/app"
	"github.com/lueurxax/glint/internal/platform/config"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "glint",
		Short:         "Personalized news podcast generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newGenerateCommand())

	return rootCmd
}

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) error {
				if port > 0 {
					cfg.HTTPPort = port
				}

				return app.New(cfg, logger).RunServe(ctx)
			})
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override HTTP_PORT")

	return cmd
}

// withApp loads config, builds the logger and runs fn under a signal-aware context.
func withApp(parent context.Context, fn func(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.IsLocal())

	if parent == nil {
		parent = context.Background()
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fn(ctx, cfg, &logger); err != nil {
		return err
	}

	logger.Info().Msg("application stopped")

	return nil
}

func newLogger(local bool) zerolog.Logger {
	if local {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
