package models

import "errors"

var (
	// ErrValidation marks input that failed a precondition.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to an entity that does not exist.
	ErrNotFound = errors.New("not found")
)
