package middleware

import (
	"net/http"
	"strings"

	"bistro/internal/domain/entity"
	"bistro/internal/domain/service"
	"bistro/internal/usecase"

	"github.com/labstack/echo/v4"
)

// identityContextKey is where Authenticate stores the resolved identity.
const identityContextKey = "identity"

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	accounts usecase.AccountUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, accounts usecase.AccountUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, accounts: accounts}
}

// IdentityFrom returns the identity set by Authenticate, or nil when the
// request is unauthenticated.
func IdentityFrom(c echo.Context) *entity.Identity {
	identity, _ := c.Get(identityContextKey).(*entity.Identity)

	return identity
}

// Authenticate validates the Bearer access token and resolves the caller
// against the user store. Resolution fails closed: a valid token for a
// deleted user is still a 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := m.resolve(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		c.Set(identityContextKey, identity)

		return next(c)
	}
}

// OptionalAuthenticate resolves the identity when a Bearer token is present
// but lets anonymous requests through. Public routes use it to behave
// differently for logged-in callers.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if identity, ok := m.resolve(c); ok {
			c.Set(identityContextKey, identity)
		}

		return next(c)
	}
}

// RequireRole checks the resolved identity for an exact role. Admins do not
// implicitly satisfy other roles; the role-scoped listings depend on that.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			if identity == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			}
			if identity.Role != requiredRole {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require '" + requiredRole.String() + "' role"})
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) resolve(c echo.Context) (*entity.Identity, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, false
	}

	claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, false
	}

	identity, err := m.accounts.ResolveIdentity(c.Request().Context(), claims.UserID)
	if err != nil {
		return nil, false
	}

	return identity, true
}
