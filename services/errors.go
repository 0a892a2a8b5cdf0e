package services

import "errors"

var (
	// ErrCorruptedState marks a local-state invariant violation: a stored
	// username without a stored secret, or a cart clear that left rows
	// behind. This should never happen in correct operation; callers decide
	// whether to log and exit.
	ErrCorruptedState = errors.New("local state corrupted")

	// ErrSizeIndexOutOfRange is returned when a cart or order line refers to
	// a price tier the catalog entry does not have.
	ErrSizeIndexOutOfRange = errors.New("size index out of range")

	ErrCartEmpty = errors.New("shopping cart is empty")

	// ErrPushInFlight means a progress push for the same order is still
	// outstanding. The caller must wait before editing again.
	ErrPushInFlight = errors.New("progress push already in flight")

	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrNoStoredAccount = errors.New("no account stored")

	// ErrNoRefreshToken means the stored account never got a backend token
	// pair, which is the case for customer accounts.
	ErrNoRefreshToken = errors.New("no refresh token stored")
)

// ValidationError carries the human-readable reason of the first violated
// checkout rule. Expected and recoverable; shown inline to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
