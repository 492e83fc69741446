package service

import (
	"errors"
	"time"

	"bistro/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSecretMissing is returned when a signing secret is not configured; the
// boundary maps it to a 500 rather than a token-validation 400.
var ErrSecretMissing = errors.New("token secret not configured")

// Claims defines the custom claims carried by the JWT tokens.
type Claims struct {
	UserID uuid.UUID
	Role   entity.Role
	Type   string // "access", "refresh" or "verify"
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates an access/refresh token pair for a user.
	GenerateTokens(userID uuid.UUID, role entity.Role) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// GenerateVerificationToken mints the short-lived signed token backing
	// an email verification record.
	GenerateVerificationToken(userID uuid.UUID) (token string, expiresAt time.Time, err error)

	// ValidateVerificationToken checks a verification token and returns the
	// user it was minted for.
	ValidateVerificationToken(tokenString string) (uuid.UUID, error)

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
