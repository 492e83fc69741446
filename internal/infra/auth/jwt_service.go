// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bistro/config"
	"bistro/internal/domain/entity"
	"bistro/internal/domain/service"
)

const defaultVerificationTTL = 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	verifySecret  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	verifyTTL     time.Duration
}

// NewJWTService is the constructor for jwtService.
// The access and refresh secrets are mandatory; the verification secret may
// be left empty, in which case minting and validating verification tokens
// fails with service.ErrSecretMissing at call time.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	verifyTTL := defaultVerificationTTL
	if cfg.Verification != nil && cfg.Verification.TokenTTL > 0 {
		verifyTTL = cfg.Verification.TokenTTL
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		verifySecret:  cfg.SecretKey.Verify,
		accessTTL:     time.Minute * 15,
		refreshTTL:    time.Hour * 24 * 7,
		verifyTTL:     verifyTTL,
	}, nil
}

// GenerateTokens creates a new access token and refresh token pair.
func (s *jwtService) GenerateTokens(userID uuid.UUID, role entity.Role) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.generateToken(userID, role, s.accessTTL, s.accessSecret, "access")
	if err != nil {
		return "", "", err
	}

	// The refresh token carries no role; it is only good for minting a new pair.
	refreshToken, err = s.generateToken(userID, "", s.refreshTTL, s.refreshSecret, "refresh")
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAccessToken checks an access token and returns its claims.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return s.parseClaims(tokenString, s.accessSecret, "access")
}

// GenerateVerificationToken mints the short-lived signed token backing an
// email verification record.
func (s *jwtService) GenerateVerificationToken(userID uuid.UUID) (string, time.Time, error) {
	if s.verifySecret == "" {
		return "", time.Time{}, service.ErrSecretMissing
	}

	expiresAt := time.Now().Add(s.verifyTTL)
	token, err := s.generateToken(userID, "", s.verifyTTL, s.verifySecret, "verify")
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// ValidateVerificationToken checks a verification token and returns the user
// it was minted for.
func (s *jwtService) ValidateVerificationToken(tokenString string) (uuid.UUID, error) {
	if s.verifySecret == "" {
		return uuid.Nil, service.ErrSecretMissing
	}

	claims, err := s.parseClaims(tokenString, s.verifySecret, "verify")
	if err != nil {
		return uuid.Nil, err
	}

	return claims.UserID, nil
}

// RefreshTokenDuration returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// generateToken is a private helper to create an HS256 JWT.
func (s *jwtService) generateToken(userID uuid.UUID, role entity.Role, ttl time.Duration, secret, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
		"type": tokenType,
	}
	if role != "" {
		claims["role"] = string(role)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// parseClaims validates signature, expiry and token type, then maps the raw
// claims into the domain Claims struct.
func (s *jwtService) parseClaims(tokenString, secret, wantType string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if tokenType, _ := mapClaims["type"].(string); tokenType != wantType {
		return nil, errors.Errorf("unexpected token type %q", tokenType)
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject claim")
	}

	claims := &service.Claims{
		UserID: userID,
		Type:   wantType,
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = entity.Role(role)
	}

	return claims, nil
}
