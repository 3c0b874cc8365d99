package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("already exists")
	// ErrInsufficientSeats is returned when a flight does not have enough
	// available seats left for the requested booking.
	ErrInsufficientSeats = errors.New("not enough seats available")
)
