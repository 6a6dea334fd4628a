package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/assetpub/pkg/cli/config"
	"github.com/m-mizutani/assetpub/pkg/domain/types"
	"github.com/m-mizutani/assetpub/pkg/infra/actions"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

type runConfig struct {
	stdout io.Writer
	stderr io.Writer
}

// Option is a functional option for Run
type Option func(*runConfig)

// WithStdout sets the writer for outputs and failure status
func WithStdout(w io.Writer) Option {
	return func(c *runConfig) {
		c.stdout = w
	}
}

// WithStderr sets the writer for log output
func WithStderr(w io.Writer) Option {
	return func(c *runConfig) {
		c.stderr = w
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	rc := &runConfig{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(rc)
	}

	loggerCfg := config.Logger{Output: rc.stderr}
	var sentryCfg config.Sentry
	var logger *slog.Logger
	var sentryEnabled bool

	app := &cli.Command{
		Name:      "assetpub",
		Usage:     "Upload files as GitHub release assets",
		Version:   types.Version,
		Writer:    rc.stdout,
		ErrWriter: rc.stderr,
		Flags:     append(loggerCfg.Flags(), sentryCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			sentryEnabled, err = sentryCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdPublish(rc.stdout),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		actions.New("", rc.stdout).SetFailed(err)
		if sentryEnabled {
			sentryCfg.Report(err)
		}
		return err
	}

	return nil
}
