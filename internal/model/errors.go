package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")

	// ErrInvalidCredentials is returned for any login mismatch without
	// distinguishing which field failed.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrCorrupted labels a blob whose stored JSON no longer parses.
	ErrCorrupted = errors.New("store corrupted")
)
