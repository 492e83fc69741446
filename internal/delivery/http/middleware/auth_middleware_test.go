package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/service"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenService struct {
	userID uuid.UUID
	err    error
}

func (f *fakeTokenService) GenerateTokens(uuid.UUID, entity.Role) (string, string, error) {
	return "", "", errors.New("not implemented")
}

func (f *fakeTokenService) ValidateAccessToken(string) (*service.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &service.Claims{UserID: f.userID}, nil
}

func (f *fakeTokenService) GenerateVerificationToken(uuid.UUID) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not implemented")
}

func (f *fakeTokenService) ValidateVerificationToken(string) (uuid.UUID, error) {
	return uuid.Nil, errors.New("not implemented")
}

func (f *fakeTokenService) RefreshTokenDuration() time.Duration {
	return 0
}

type fakeAccounts struct {
	usecase.AccountUsecase

	identity *entity.Identity
	err      error
}

func (f *fakeAccounts) ResolveIdentity(context.Context, uuid.UUID) (*entity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.identity, nil
}

func newAuthTestContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthenticateResolvesIdentity(t *testing.T) {
	userID := uuid.New()
	mw := NewAuthMiddleware(
		&fakeTokenService{userID: userID},
		&fakeAccounts{identity: &entity.Identity{UserID: userID, Role: entity.RoleClient}},
	)

	c, _ := newAuthTestContext(t, "Bearer some-token")

	var seen *entity.Identity
	next := func(c echo.Context) error {
		seen = IdentityFrom(c)

		return nil
	}

	require.NoError(t, mw.Authenticate(next)(c))
	require.NotNil(t, seen)
	assert.Equal(t, userID, seen.UserID)
	assert.Equal(t, entity.RoleClient, seen.Role)
}

func TestAuthenticateRejectsMissingOrMalformedHeader(t *testing.T) {
	mw := NewAuthMiddleware(&fakeTokenService{userID: uuid.New()}, &fakeAccounts{})

	next := func(c echo.Context) error { return nil }

	for _, header := range []string{"", "Token abc", "bad-format"} {
		c, rec := newAuthTestContext(t, header)
		require.NoError(t, mw.Authenticate(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticateFailsClosedOnUnknownUser(t *testing.T) {
	// A valid token whose user row is gone is still a 401.
	mw := NewAuthMiddleware(
		&fakeTokenService{userID: uuid.New()},
		&fakeAccounts{err: domainerrors.ErrUnauthenticated},
	)

	c, rec := newAuthTestContext(t, "Bearer some-token")
	next := func(c echo.Context) error { return nil }

	require.NoError(t, mw.Authenticate(next)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthenticateLetsAnonymousThrough(t *testing.T) {
	mw := NewAuthMiddleware(&fakeTokenService{err: errors.New("boom")}, &fakeAccounts{})

	c, rec := newAuthTestContext(t, "")

	called := false
	next := func(c echo.Context) error {
		called = true
		assert.Nil(t, IdentityFrom(c))

		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, mw.OptionalAuthenticate(next)(c))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleExactMatch(t *testing.T) {
	userID := uuid.New()
	mw := NewAuthMiddleware(
		&fakeTokenService{userID: userID},
		&fakeAccounts{identity: &entity.Identity{UserID: userID, Role: entity.RoleAdmin}},
	)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	// Admin passes an admin gate.
	c, rec := newAuthTestContext(t, "Bearer some-token")
	require.NoError(t, mw.Authenticate(mw.RequireRole(entity.RoleAdmin)(next))(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Admin does not pass a seller gate.
	c, rec = newAuthTestContext(t, "Bearer some-token")
	require.NoError(t, mw.Authenticate(mw.RequireRole(entity.RoleSeller)(next))(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// No identity at all: 401.
	c, rec = newAuthTestContext(t, "")
	require.NoError(t, mw.RequireRole(entity.RoleSeller)(next)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
