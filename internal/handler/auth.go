package handler

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"notekeeper/internal/auth"
	"notekeeper/internal/domain"
	"notekeeper/internal/domain/repositories"
	"notekeeper/internal/httputil"
)

// AuthHandler handles login and token refresh
type AuthHandler struct {
	users  repositories.UserRepository
	hasher auth.PasswordHasher
	tokens auth.TokenService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users repositories.UserRepository, hasher auth.PasswordHasher, tokens auth.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AuthToken string `json:"authToken"`
}

// Login verifies credentials and issues a token.
// POST /api/login (public)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.Validate(req.Username,
		validation.Required.Error("Missing `username` in request body")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.Validate(req.Password,
		validation.Required.Error("Missing `password` in request body")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		// One message for unknown username and wrong password alike, so the
		// endpoint cannot be used to enumerate accounts
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		handleError(w, h.logger, err)
		return
	}

	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(auth.TokenUser{
		ID:       user.ID,
		Username: user.Username,
		Fullname: user.Fullname,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("login", "user_id", user.ID, "username", user.Username)
	httputil.RespondJSON(w, http.StatusOK, tokenResponse{AuthToken: token})
}

// Refresh issues a fresh token for an identity already proven by a valid
// bearer token. Sliding session: the old token stays valid until its own
// expiry, there is no revocation list.
// POST /api/login/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)
	if identity.UserID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := h.tokens.Issue(auth.TokenUser{
		ID:       identity.UserID,
		Username: identity.Username,
		Fullname: identity.Fullname,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tokenResponse{AuthToken: token})
}
