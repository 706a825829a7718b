// Command mailgate runs the StockFolio transactional email gateway.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrymomot/mailgate/internal"
	"github.com/dmitrymomot/mailgate/internal/emails"
	"github.com/dmitrymomot/mailgate/internal/handlers"
	"github.com/dmitrymomot/mailgate/middlewares"
	"github.com/dmitrymomot/mailgate/pkg/logger"
	"github.com/dmitrymomot/mailgate/pkg/mailer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mailgate:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())

	sender, err := newRelay(cfg)
	if err != nil {
		return err
	}
	m := mailer.New(sender, emails.NewRenderer(), cfg.Mailer)

	switch {
	case !cfg.Auth.Required:
		log.Warn("authentication disabled; every request is accepted")
	case cfg.Auth.APIKey == "":
		log.Warn("EMAIL_SERVICE_API_KEY is empty; every send request will be rejected")
	}
	if err := sender.Healthcheck()(context.Background()); err != nil {
		log.Warn("relay not ready", "provider", sender.Name(), "error", err)
	}

	app := internal.New(
		internal.WithLogger(log),
		internal.WithMaxBodyBytes(cfg.MaxBodyBytes),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logging(),
			middlewares.Recover(),
			middlewares.CORS(cfg.CORS),
		),
		internal.WithHealthChecks(
			internal.WithReadinessCheck("relay", sender.Healthcheck()),
		),
		internal.WithHandlers(
			handlers.NewHealthHandler(),
			handlers.NewEmailHandler(m, cfg.Auth),
		),
	)

	log.Info("mailgate configured", "provider", sender.Name(), "port", cfg.Port)

	return app.Run(":"+cfg.Port,
		internal.Logger(log),
		internal.ShutdownTimeout(cfg.ShutdownTimeout),
		internal.ShutdownHook(logger.Flush),
	)
}
