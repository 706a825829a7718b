// Package middlewares provides the HTTP middleware of the mail gateway.
//
// # Request ID
//
// RequestID tags each request with an ID taken from X-Request-ID (or
// X-Correlation-ID) or generated as a UUID, and echoes it in the response.
// Pair it with RequestIDExtractor so every log line carries request_id:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Logging()),
//	)
//
// # Recover
//
// Recover turns a panic into a 500 {"success": false, "error": "Internal server error"}.
// The panic value and stack are logged and kept on a *PanicError inside the
// returned error chain:
//
//	if pe, ok := middlewares.AsPanicError(err); ok {
//	    sentry.CaptureMessage(fmt.Sprint(pe.Value))
//	}
//
// # CORS
//
// CORS answers preflight requests and echoes allowed origins. CORSConfig
// carries env tags, so it can be parsed alongside the rest of the config.
//
// # Bearer authentication
//
// BearerAuth guards a route group with a shared API key:
//
//	r.Group(func(r internal.Router) {
//	    r.Use(middlewares.BearerAuth(cfg.Auth))
//	    r.POST("/send", h.send)
//	})
//
// The Authorization header must equal "Bearer <key>" exactly. Failures are
// answered with 401 {"error": "Unauthorized"}. REQUIRE_AUTH=false disables
// the check entirely.
//
// # Logging
//
// Logging writes one line per request with method, path, status and duration.
package middlewares
