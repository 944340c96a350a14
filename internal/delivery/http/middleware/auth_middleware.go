package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"
)

// accountContextKey is the echo.Context key holding the resolved account.
const accountContextKey = "account"

// AuthMiddleware guards protected routes. It extracts the bearer token,
// resolves it to an account through the identity usecase, and stores the
// account on the request context. Every failure mode produces the same
// ErrUnauthorized response so the gate leaks nothing about the cause.
type AuthMiddleware struct {
	identity usecase.IdentityUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(identity usecase.IdentityUsecase) *AuthMiddleware {
	return &AuthMiddleware{identity: identity}
}

// Authenticate validates the Authorization header and loads the account.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrUnauthorized.WrapMessage("missing or malformed bearer token")
		}

		account, err := m.identity.Resolve(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(accountContextKey, account)

		return next(c)
	}
}

// AccountFromContext returns the account resolved by Authenticate, or nil
// when the route was not guarded.
func AccountFromContext(c echo.Context) *entity.Account {
	account, _ := c.Get(accountContextKey).(*entity.Account)

	return account
}

// bearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. The scheme match is case-insensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}
