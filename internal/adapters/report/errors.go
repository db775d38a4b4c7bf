package report

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMalformedReport = errors.New("malformed assignment report")
	ErrUnknownMember   = errors.New("member not present in roster")
)
