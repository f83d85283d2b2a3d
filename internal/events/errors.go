package events

import "errors"

var (
	ErrNotFound          = errors.New("events: event not found")
	ErrEventFull         = errors.New("events: event is full")
	ErrAlreadyRegistered = errors.New("events: email already registered for this event")
	ErrDuplicateSlug     = errors.New("events: duplicate slug")
	ErrInvalidSeed       = errors.New("events: invalid seed data")
)
