// Package internal provides the HTTP runtime of the mail gateway.
//
// # Core Types
//
//   - App: owns the chi router, middleware stack, health probes and graceful shutdown
//   - Context: request/response access, JSON binding with validation, logging helpers
//   - Router: interface handlers use to declare routes and route groups
//   - Handler: implemented by types that declare routes on a router
//   - HandlerFunc: route handler signature; a returned error goes to the ErrorHandler
//   - Middleware: wraps a HandlerFunc with a cross-cutting concern
//   - ErrorHandler: renders handler errors
//
// # Context as context.Context
//
// Context embeds context.Context and delegates Deadline, Done, Err and Value
// to the request context, so it can be passed to blocking calls directly:
//
//	func (h *EmailHandler) send(c internal.Context) error {
//	    if err := h.mailer.SendRaw(c, email); err != nil {
//	        return internal.ErrInternal(err.Error(), internal.WithError(err))
//	    }
//	    return c.JSON(http.StatusOK, result)
//	}
//
// A client that disconnects cancels the context and aborts the relay exchange.
//
// # Application Structure
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("relay", sender.Healthcheck())),
//	    internal.WithHandlers(handlers.NewEmailHandler(m, auth)),
//	)
//	if err := app.Run(":5000", internal.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Binding
//
// BindJSON decodes a JSON body and validates it with struct tags.
// A missing or malformed body becomes a 400 *HTTPError; rule failures are
// returned as ValidationErrors so the handler decides the wording:
//
//	var req SendRequest
//	verrs, err := c.BindJSON(&req)
//	if err != nil {
//	    return err
//	}
//	if len(verrs) > 0 {
//	    return internal.ErrBadRequest("Missing required fields: to, subject")
//	}
//
// # Error Handling
//
// DefaultErrorHandler writes {"success": false, "error": message} using the
// status of an *HTTPError, or 500 for any other error. Extra members are
// attached with WithField:
//
//	return internal.ErrInternal("relay not configured", internal.WithField("to", req.To))
//
// Errors returned after the response was written are logged and dropped.
package internal
