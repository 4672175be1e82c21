package database

import "errors"

var (
	// ErrUnavailable indicates a connection could not be checked out of the
	// pool. Handlers surface it as a server error; it is never retried here.
	ErrUnavailable = errors.New("database unavailable")

	// ErrNotFound indicates a lookup matched no rows or a mutation affected
	// no rows.
	ErrNotFound = errors.New("not found")
)
