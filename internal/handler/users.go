package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"notekeeper/internal/auth"
	"notekeeper/internal/domain"
	"notekeeper/internal/domain/models"
	"notekeeper/internal/domain/repositories"
	"notekeeper/internal/httputil"
)

// UserHandler handles user registration
type UserHandler struct {
	users  repositories.UserRepository
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users repositories.UserRepository, hasher auth.PasswordHasher, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// registerRequest keeps fields untyped so a wrong JSON type is reported as
// a validation failure rather than a decode error.
type registerRequest struct {
	Username interface{} `json:"username"`
	Password interface{} `json:"password"`
	Fullname interface{} `json:"fullname"`
}

// registeredUser is the response shape: id, username, fullname and nothing
// else. The password hash must never appear in any response.
type registeredUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname,omitempty"`
}

const (
	passwordMinLength = 8
	// bcrypt reads at most 72 bytes, so the upper bound is enforced on
	// bytes as well as runes; longer passwords are rejected instead of
	// silently truncated
	passwordMaxLength = 72
)

// Register creates a new user account.
// POST /api/users (public)
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		// An absent body behaves like an empty object here, so the
		// missing-field messages apply rather than a decode failure
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	username, password, fullname, verr := validateRegistration(&req)
	if verr != "" {
		httputil.RespondError(w, http.StatusUnprocessableEntity, verr)
		return
	}

	digest, err := h.hasher.Hash(password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	user := &models.User{
		Username:     username,
		PasswordHash: digest,
		Fullname:     fullname,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		// A duplicate username is a validation failure on this endpoint,
		// whether caught here or raced into the unique index
		if errors.Is(err, domain.ErrConflict) {
			httputil.RespondError(w, http.StatusUnprocessableEntity, "Username already taken")
			return
		}
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("user registered", "id", user.ID, "username", user.Username)

	w.Header().Set("Location", "/api/users/"+user.ID)
	httputil.RespondJSON(w, http.StatusCreated, registeredUser{
		ID:       user.ID,
		Username: user.Username,
		Fullname: user.Fullname,
	})
}

// validateRegistration runs the registration checks in contract order:
// presence, string typing, no edge whitespace, length bounds. It returns
// the extracted fields and an empty message on success.
func validateRegistration(req *registerRequest) (username, password, fullname string, message string) {
	required := []struct {
		name  string
		value interface{}
	}{
		{"username", req.Username},
		{"password", req.Password},
	}
	for _, field := range required {
		if field.value == nil {
			return "", "", "", fmt.Sprintf("Missing `%s` in request body", field.name)
		}
	}

	typed := map[string]interface{}{
		"username": req.Username,
		"password": req.Password,
		"fullname": req.Fullname,
	}
	for _, name := range []string{"username", "password", "fullname"} {
		value := typed[name]
		if value == nil {
			continue
		}
		if _, ok := value.(string); !ok {
			return "", "", "", fmt.Sprintf("Incorrect field type: expected string (%s)", name)
		}
	}

	username = req.Username.(string)
	password = req.Password.(string)
	if req.Fullname != nil {
		fullname = req.Fullname.(string)
	}

	trimmed := []struct {
		name  string
		value string
	}{
		{"username", username},
		{"password", password},
	}
	for _, field := range trimmed {
		if strings.TrimSpace(field.value) != field.value {
			return "", "", "", fmt.Sprintf("Cannot start or end with whitespace (%s)", field.name)
		}
	}

	if utf8.RuneCountInString(username) < 1 {
		return "", "", "", "Must be at least 1 characters long (username)"
	}
	if utf8.RuneCountInString(password) < passwordMinLength {
		return "", "", "", fmt.Sprintf("Must be at least %d characters long (password)", passwordMinLength)
	}
	if utf8.RuneCountInString(password) > passwordMaxLength || len(password) > passwordMaxLength {
		return "", "", "", fmt.Sprintf("Must be at most %d characters long (password)", passwordMaxLength)
	}

	return username, password, strings.TrimSpace(fullname), ""
}
