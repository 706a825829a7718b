// Package handlers implements the gateway's HTTP endpoints.
//
// EmailHandler exposes POST /send, /send-verification, /send-password-reset
// and /send-dividend-alert behind middlewares.BearerAuth. A request that is
// missing a required field gets a 400 and never reaches the relay. A failed
// delivery gets a 500 whose "error" member is the provider's reason:
//
//	{"success": false, "error": "authentication failed: 535 5.7.8 ...", "to": "user@example.com"}
//
// HealthHandler exposes the unauthenticated GET /health.
package handlers
