package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateEmail is returned when the unique email index rejects a write.
	ErrDuplicateEmail = errors.New("email already exists")
)
