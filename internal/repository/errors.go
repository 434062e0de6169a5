package repository

import "errors"

var (
	// ErrNotFound indicates no record matched the lookup. Owner-scoped
	// lookups return it both for missing ids and for records owned by a
	// different user.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a uniqueness constraint was violated.
	ErrDuplicate = errors.New("record already exists")
)
