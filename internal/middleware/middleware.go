// Package middleware holds the global and route-level echo middleware:
// request ids, request-scoped loggers, New Relic tracing, JWT auth, rate
// limiting, Prometheus metrics and the global error handler.
package middleware
