package domain

import "errors"

var (
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrNotFound       = errors.New("not found")
	ErrNoRowsAffected = errors.New("no rows affected")
	// ErrConflict is returned when a transaction lost a lock race and may be retried.
	ErrConflict = errors.New("concurrent update conflict")
)
