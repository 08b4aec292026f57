package player

import "errors"

var (
	// ErrNotReady indicates Start without a successfully loaded pattern.
	ErrNotReady = errors.New("player: no pattern loaded")

	// ErrBusy indicates an operation rejected while a file read is in flight.
	ErrBusy = errors.New("player: load in progress")

	// ErrNoPattern indicates Reset with no pattern text to replay.
	ErrNoPattern = errors.New("player: no pattern text")

	// ErrInvalidMargin indicates a negative or non-numeric margin.
	ErrInvalidMargin = errors.New("player: margin must be a non-negative integer")

	// ErrInvalidDelay indicates a non-positive or non-numeric delay.
	ErrInvalidDelay = errors.New("player: delay must be a positive number of milliseconds")

	// ErrMissingOption indicates New was called without a required collaborator.
	ErrMissingOption = errors.New("player: missing required option")
)
