package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/mailgate/middlewares"
	"github.com/dmitrymomot/mailgate/pkg/logger"
	"github.com/dmitrymomot/mailgate/pkg/mailer"
	"github.com/dmitrymomot/mailgate/pkg/mailer/resend"
	"github.com/dmitrymomot/mailgate/pkg/mailer/smtp"
)

// config is read once at startup and never changes afterwards.
type config struct {
	Port            string        `env:"PORT" envDefault:"5000"`
	Provider        string        `env:"MAIL_PROVIDER" envDefault:"smtp"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	Auth   middlewares.AuthConfig
	CORS   middlewares.CORSConfig
	SMTP   smtp.Config
	Resend resend.Config
	Mailer mailer.Config
	Log    logger.Config
}

// loadConfig reads .env files (if any) into the process environment and
// parses it. Variables already set in the environment win over .env values.
func loadConfig(files ...string) (config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// relay is a mail provider that can report its own readiness.
type relay interface {
	mailer.Sender
	Healthcheck() func(context.Context) error
}

// newRelay builds the single provider named by MAIL_PROVIDER.
func newRelay(cfg config) (relay, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "smtp":
		return smtp.New(cfg.SMTP), nil
	case "resend":
		return resend.New(cfg.Resend), nil
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q: want smtp or resend", cfg.Provider)
	}
}
