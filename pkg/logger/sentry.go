package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration settings.
// Failed deliveries log at error level and become Sentry issues.
type SentryConfig struct {
	DSN         string `env:"DSN"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
	// MinLevel is the lowest level forwarded to Sentry as a log entry.
	MinLevel string `env:"MIN_LEVEL" envDefault:"warn"`
}

func newSentryHandler(cfg SentryConfig) (slog.Handler, error) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}

	minLevel, err := ParseLevel(cfg.MinLevel)
	if err != nil {
		minLevel = slog.LevelWarn
	}
	logLevels := []slog.Level{slog.LevelError}
	if minLevel <= slog.LevelWarn {
		logLevels = []slog.Level{slog.LevelWarn, slog.LevelError}
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background()), nil
}

// Flush waits for buffered Sentry events until ctx is done.
// It is a no-op when Sentry was never initialised, and fits internal.ShutdownHook.
func Flush(ctx context.Context) error {
	timeout := 2 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if sentry.CurrentHub().Client() == nil {
		return nil
	}
	if !sentry.Flush(timeout) {
		return fmt.Errorf("sentry flush: timed out after %s", timeout)
	}
	return nil
}
