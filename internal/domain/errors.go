package domain

import "errors"

var (
	// ErrNotFound is returned when a saved network does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalid is wrapped by every validation failure
	ErrInvalid = errors.New("invalid")
)
