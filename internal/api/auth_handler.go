package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/shopfront-dev/shopfront/internal/api/middleware"
	"github.com/shopfront-dev/shopfront/internal/api/shared"
	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/service/auth"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// AuthHandler serves registration, login and logout. Successful auth
// establishes both a web session and a bearer token, so browser and API
// clients share the same endpoints.
type AuthHandler struct {
	selector *store.Selector
	sessions *scs.SessionManager
	jwt      *auth.JWTService
	logger   *slog.Logger
}

// NewAuthHandler builds the handler.
func NewAuthHandler(selector *store.Selector, sessions *scs.SessionManager, jwt *auth.JWTService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		selector: selector,
		sessions: sessions,
		jwt:      jwt,
		logger:   logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.ValidationDetail(err))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "failed to process password")
		return
	}

	user, err := h.selector.Active().CreateUser(r.Context(), &domain.InsertUser{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
	})
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}

	h.logger.Info("user registered", slog.Int64("user_id", user.ID))
	h.establishSession(w, r, user)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.ValidationDetail(err))
		return
	}

	user, err := h.selector.Active().GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if store.IsNotFound(err) {
			// Indistinguishable from a bad password on purpose.
			shared.RespondWithError(w, r, http.StatusUnauthorized, SafeErrorMessage(auth.ErrInvalidCredentials))
			return
		}
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, SafeErrorMessage(err))
			return
		}
		shared.RespondWithError(w, r, http.StatusInternalServerError, "failed to verify credentials")
		return
	}

	h.logger.Info("user logged in", slog.Int64("user_id", user.ID))
	h.establishSession(w, r, user)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "failed to end session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/auth/me for authenticated callers.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.selector.Active().GetUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// establishSession renews the session for the user and responds with the
// bearer token alternative.
func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, user *domain.User) {
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "failed to establish session")
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionUserIDKey, user.ID)
	h.sessions.Put(r.Context(), middleware.SessionUserRoleKey, user.Role)

	token, err := h.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "failed to issue token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{Token: token, User: user})
}
