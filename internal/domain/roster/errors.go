package roster

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidRoster = errors.New("invalid roster")
	ErrMissingField  = errors.New("missing required field")
	ErrDuplicateID   = errors.New("duplicate competitor id")
)
