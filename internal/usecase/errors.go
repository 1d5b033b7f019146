package usecase

import crerr "github.com/cockroachdb/errors"

// Sentinel kinds returned by the services, always wrapped with detail.
// The HTTP layer maps each to a status code.
var (
	ErrInvalidInput = crerr.New("invalid input")
	ErrNotFound     = crerr.New("resource not found")
	ErrConflict     = crerr.New("resource conflict")
	// ErrUnauthorized is raised for admin routes with a missing or wrong token.
	ErrUnauthorized = crerr.New("unauthorized")
	// ErrDependencyUnavailable means a required collaborator is not
	// configured, such as the admin token.
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)
