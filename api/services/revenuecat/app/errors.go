package app

import "errors"

// Typed errors for the RevenueCat app layer. The HTTP layer renders all of them
// the same way but logs and metrics use them to tell failures apart.
var (
	// ErrBadEvent indicates the incoming webhook payload is invalid or missing required fields.
	ErrBadEvent = errors.New("bad event")
	// ErrBadRequest indicates a caller request failed validation.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized indicates the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotConfigured indicates a required secret is missing from the configuration.
	ErrNotConfigured = errors.New("not configured")
	// ErrDatabase indicates a database-related failure.
	ErrDatabase = errors.New("database error")
	// ErrGateway indicates a failure from the RevenueCat API.
	ErrGateway = errors.New("gateway error")
)
