package documents

import "errors"

var (
	// ErrNotFound signals absence, as opposed to a store failure.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a rejected upload (bad filename).
	ErrInvalidInput = errors.New("invalid input")
)
