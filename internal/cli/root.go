// Package cli implements the mention-pulse command line.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgball2608/mention-pulse/internal/app"
	"github.com/orgball2608/mention-pulse/pkg/config"
	"github.com/orgball2608/mention-pulse/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var verbose bool

var RootCmd = &cobra.Command{
	Use:           "mention-pulse",
	Short:         "Validate, store and rank social media mentions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log dependency injection events")
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Flush()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		logFailure(err)
		return err
	}
	return nil
}

func logFailure(err error) {
	log, cfgErr := newLogger()
	if cfgErr != nil {
		log = logger.New(logger.Opts{})
	}
	log.Error("Command failed", "error", err)
}

// runApp starts the fx application, fills targets, runs fn and stops the application.
func runApp(ctx context.Context, fn func() error, targets ...any) error {
	opts := []fx.Option{
		app.App,
		fx.Populate(targets...),
	}

	if verbose {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		opts = append(opts, fx.Logger(logger.New(logger.Opts{Env: cfg.App.Env})))
	} else {
		opts = append(opts, fx.NopLogger)
	}

	application := fx.New(opts...)
	if err := application.Start(ctx); err != nil {
		return err
	}
	defer application.Stop(context.Background())

	return fn()
}

// newLogger builds a logger for commands that run without the fx application.
func newLogger() (logger.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	return logger.New(logger.Opts{Env: cfg.App.Env, SentryDsn: cfg.App.SentryUrl}), nil
}
