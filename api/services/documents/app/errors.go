package app

import "errors"

var (
	// ErrBadRequest indicates the document metadata or status change failed validation.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized indicates the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates no document with that id belongs to the caller.
	ErrNotFound = errors.New("not found")
	// ErrDatabase indicates a database-related failure.
	ErrDatabase = errors.New("database error")
)
