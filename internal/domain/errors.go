package domain

import "errors"

var (
	ErrInvalidTimeRange    = errors.New("time range start is after end")
	ErrDuplicateIdentifier = errors.New("duplicate session identifier")
	ErrInvalidHeartbeat    = errors.New("invalid heartbeat")
	ErrSessionOutOfRange   = errors.New("session outside report time range")
	ErrMissingConfig       = errors.New("missing required configuration")
)
