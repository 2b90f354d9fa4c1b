package game

import "errors"

// Error classes the HTTP layer maps onto status codes. Transition guards
// wrap these with fmt.Errorf("%w: ...") so callers can errors.Is on them.
var (
	// ErrValidation covers malformed input and guard failures (wrong
	// state, too few players, double vote and so on).
	ErrValidation = errors.New("invalid request")

	// ErrForbidden covers non-host attempts at host-only transitions and
	// requests from players who are not room members.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound covers missing rooms and missing target players.
	ErrNotFound = errors.New("not found")
)
