package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/shopfront-dev/shopfront/internal/api/shared"
	"github.com/shopfront-dev/shopfront/internal/service/auth"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// MapErrorToStatusCode translates internal errors into HTTP status codes so
// handlers never leak concrete error types to clients.
func MapErrorToStatusCode(err error) int {
	var vErrs validator.ValidationErrors
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case store.IsNotFound(err):
		return http.StatusNotFound

	case store.IsDuplicate(err):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrInvalidQuantity),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &vErrs):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrBackendUnavailable):
		return http.StatusServiceUnavailable

	default:
		// ErrDanglingCartItem lands here on purpose: corrupted data is a
		// server-side failure, not something the client can correct.
		return http.StatusInternalServerError
	}
}

// SafeErrorMessage returns a client-facing message for err, hiding internal
// detail for anything unexpected.
func SafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "an unexpected error occurred"

	case errors.Is(err, auth.ErrExpiredToken):
		return "token has expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return "invalid token"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid username or password"

	case errors.Is(err, store.ErrUsernameExists):
		return "username is already taken"
	case errors.Is(err, store.ErrEmailExists):
		return "email is already registered"
	case store.IsDuplicate(err):
		return "resource already exists"

	case errors.Is(err, store.ErrUserNotFound):
		return "user not found"
	case errors.Is(err, store.ErrCategoryNotFound):
		return "category not found"
	case errors.Is(err, store.ErrProductNotFound):
		return "product not found"
	case errors.Is(err, store.ErrCartItemNotFound):
		return "cart item not found"
	case errors.Is(err, store.ErrOrderNotFound):
		return "order not found"
	case store.IsNotFound(err):
		return "resource not found"

	case errors.Is(err, store.ErrInvalidQuantity):
		return "quantity must be at least 1"
	case errors.Is(err, shared.ErrEmptyBody):
		return "request body is required"
	case errors.Is(err, store.ErrInvalidEntity):
		return "invalid request payload"

	case errors.Is(err, store.ErrBackendUnavailable):
		return "storage is temporarily unavailable, please retry"

	default:
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return shared.ValidationDetail(err)
		}
		return "an unexpected error occurred"
	}
}
