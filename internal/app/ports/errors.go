package ports

import "errors"

// Repositories map driver errors onto these.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
