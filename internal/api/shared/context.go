// Package shared holds the request/response plumbing used by every handler:
// context keys, body decoding, validation and JSON responses.
package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the key type for request-scoped values.
type ContextKey string

const (
	// TraceIDKey carries the per-request trace ID.
	TraceIDKey ContextKey = "traceID"

	// UserIDContextKey carries the authenticated user's ID.
	UserIDContextKey ContextKey = "userID"

	// UserRoleContextKey carries the authenticated user's role.
	UserRoleContextKey ContextKey = "userRole"
)

// SetTraceID attaches a fresh trace ID to the context for log and error
// correlation.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID returns the trace ID, or "" when the context has none.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SetUser attaches the authenticated user's identity to the context.
func SetUser(ctx context.Context, userID int64, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDContextKey, userID)
	return context.WithValue(ctx, UserRoleContextKey, role)
}

// GetUserID returns the authenticated user's ID and whether one is present.
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDContextKey).(int64)
	return id, ok
}

// GetUserRole returns the authenticated user's role, or "" when anonymous.
func GetUserRole(ctx context.Context) string {
	role, ok := ctx.Value(UserRoleContextKey).(string)
	if !ok {
		return ""
	}
	return role
}
