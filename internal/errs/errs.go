// Package errs defines the error types returned by the API.
//
// Every failure a client sees is an *HTTPError serialized as JSON, with
// optional field-level errors for rejected request payloads and an
// optional action hint the frontend can follow (e.g. redirect to login).
package errs
