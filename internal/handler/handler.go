// Package handler is the HTTP layer between the router and the services.
//
// Handlers bind and validate request payloads through the validation
// package, resolve the caller from the auth middleware, and delegate to
// the service layer. Responses and errors are written by the shared
// pipeline in base.go and the global error handler.
package handler
