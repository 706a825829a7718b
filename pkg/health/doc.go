// Package health provides HTTP handlers for liveness and readiness probes.
//
// Readiness runs a set of named [Checks] in parallel, bounded by a timeout,
// and reports each result:
//
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "relay": sender.Healthcheck(),
//	}))
//
// Responses are JSON unless the client sends "Accept: text/plain" or
// "?format=text".
package health
