package balance

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrCountMismatch  = errors.New("competitor count mismatch")
	ErrTeamNotFound   = errors.New("team not found")
	ErrMemberNotFound = errors.New("member not found")
)
