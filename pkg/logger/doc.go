// Package logger builds the service's structured slog logger.
//
// Records go to stdout as JSON (or text with LOG_FORMAT=text). When
// SENTRY_DSN is set they are also forwarded to Sentry: errors become
// issues, and warnings are kept as searchable log entries.
//
// Context extractors add request-scoped attributes to every record
// logged with a context:
//
//	log := logger.New(cfg, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "email sent", "to", to)
//	// {"level":"INFO","msg":"email sent","to":"...","request_id":"..."}
//
// Call Flush during shutdown so buffered Sentry events are delivered.
package logger
