package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all backend implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	// Entity-specific variants below wrap it so callers can match either.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// invariant (username or email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an insert payload fails backend-side
	// validation. The wrapped error carries the field-level detail.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidQuantity is returned by UpdateCartItem for quantities below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrDanglingCartItem is returned when a cart row references a product
	// that no longer resolves. This is data corruption, not a not-found
	// condition: all backends fail the cart read loudly rather than silently
	// dropping the row.
	ErrDanglingCartItem = errors.New("cart item references missing product")

	// ErrBackendUnavailable is returned when a data path could not be
	// reached and every fallback was exhausted. The wrapped error preserves
	// the underlying cause for operator diagnosis.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// Entity-specific "not found" errors.

	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("%w: product", ErrNotFound)
	ErrCartItemNotFound = fmt.Errorf("%w: cart item", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("%w: order", ErrNotFound)

	// Entity-specific "duplicate" errors.

	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
	ErrEmailExists    = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFound reports whether err is any kind of "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is any kind of uniqueness violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsTerminal reports whether err is a definitive contract-level answer that
// no fallback data path could change: not-found sentinels, uniqueness
// violations, payload validation failures, and dangling cart references.
// The hosted backend uses this to decide when retrying via direct SQL is
// pointless.
func IsTerminal(err error) bool {
	return IsNotFound(err) ||
		IsDuplicate(err) ||
		errors.Is(err, ErrInvalidEntity) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrDanglingCartItem)
}
