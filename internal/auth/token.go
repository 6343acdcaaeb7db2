package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"notekeeper/internal/domain"
)

// TokenUser is the identity payload embedded in every issued token.
type TokenUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname,omitempty"`
}

// Claims is the full JWT claim set: the embedded identity plus the
// registered claims (sub = username, exp, iat).
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, time-bound identity tokens.
type TokenService interface {
	// Issue produces a signed token carrying the identity payload with a
	// fresh expiry. Calling it again for the same identity is the refresh
	// contract: a sliding session, not a rotation - prior tokens stay valid
	// until their own expiry.
	Issue(user TokenUser) (string, error)

	// Verify validates a token string and returns its claims.
	// Any failure (bad signature, expired, malformed) yields
	// domain.ErrUnauthorized.
	Verify(tokenString string) (*Claims, error)
}

// JWTService implements TokenService with a single shared HS256 secret.
type JWTService struct {
	secret []byte
	expiry time.Duration
	logger *slog.Logger
}

// NewJWTService creates a token service. The secret must be non-empty.
func NewJWTService(secret string, expiry time.Duration, logger *slog.Logger) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
		logger: logger,
	}, nil
}

// Issue signs a token for the given identity, expiring after the configured
// lifetime.
func (s *JWTService) Issue(user TokenUser) (string, error) {
	now := time.Now()
	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token and extracts its claims.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	// WithValidMethods pins HS256 to prevent algorithm confusion attacks
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		s.logger.Debug("token rejected", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		s.logger.Error("failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	// A token without an identity payload is useless downstream
	if claims.User.ID == "" || claims.User.Username == "" {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
