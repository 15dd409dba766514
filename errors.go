package structmap

import "errors"

var (
	// ErrTypeMismatch is returned when an override value can not be assigned to its target field.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotStruct is returned when a source or target is not a struct or pointer to struct.
	ErrNotStruct = errors.New("expected struct or pointer to struct")
	// ErrNilSource is returned for a nil source.
	ErrNilSource = errors.New("source was nil")
	// ErrNilDestination is returned for a nil destination pointer.
	ErrNilDestination = errors.New("destination was nil")
)
