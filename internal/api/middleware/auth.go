package middleware

import (
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/shopfront-dev/shopfront/internal/api/shared"
	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/service/auth"
)

// Session keys for the authenticated identity.
const (
	SessionUserIDKey   = "userID"
	SessionUserRoleKey = "userRole"
)

// Authenticator resolves the caller's identity from either the web session
// or an Authorization bearer token, in that order. Browser traffic carries
// the session cookie; API clients send the JWT.
type Authenticator struct {
	sessions *scs.SessionManager
	jwt      *auth.JWTService
}

// NewAuthenticator builds the middleware over the session manager and token
// service.
func NewAuthenticator(sessions *scs.SessionManager, jwt *auth.JWTService) *Authenticator {
	return &Authenticator{sessions: sessions, jwt: jwt}
}

// identify returns the caller's user ID and role, or false when the request
// carries no valid credentials.
func (a *Authenticator) identify(r *http.Request) (int64, string, bool) {
	if userID := a.sessions.GetInt64(r.Context(), SessionUserIDKey); userID != 0 {
		return userID, a.sessions.GetString(r.Context(), SessionUserRoleKey), true
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		claims, err := a.jwt.ValidateToken(token)
		if err != nil {
			return 0, "", false
		}
		return claims.UserID, claims.Role, true
	}

	return 0, "", false
}

// RequireAuth rejects unauthenticated requests and attaches the caller's
// identity to the context for handlers.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, role, ok := a.identify(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.SetUser(r.Context(), userID, role)))
	})
}

// RequireAdmin allows only authenticated users with the admin role. It must
// run after RequireAuth.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shared.GetUserRole(r.Context()) != domain.RoleAdmin {
			shared.RespondWithError(w, r, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
