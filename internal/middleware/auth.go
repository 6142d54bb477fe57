package middleware

import (
	"strings"
	"time"

	"github.com/deppfellow/carcatalog/internal/errs"
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/deppfellow/carcatalog/internal/service"
	"github.com/labstack/echo/v4"
)

// TokenParser verifies an access token. Implemented by *service.AuthService.
type TokenParser interface {
	ParseToken(raw string) (*service.Claims, error)
}

type AuthMiddleware struct {
	server *server.Server
	tokens TokenParser
}

func NewAuthMiddleware(s *server.Server, tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: tokens,
	}
}

const bearerPrefix = "bearer "

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// RequireAuth accepts `Authorization: Bearer <jwt>` and stores the user id
// and role on the echo context. A missing or invalid token is a 401.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := GetLogger(c)

		raw := bearerToken(c)
		if raw == "" {
			return errs.NewUnauthorizedError("Missing bearer token", false)
		}

		claims, err := auth.tokens.ParseToken(raw)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("rejected access token")
			return errs.NewUnauthorizedError("Invalid or expired token", false)
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRoleKey, claims.Role)

		setLogger(c, logger.With().
			Str("user_id", claims.Subject).
			Str("user_role", claims.Role).
			Logger())

		GetLogger(c).Debug().
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}

// RequireRole must run after RequireAuth. Other roles get a 403.
func (auth *AuthMiddleware) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetUserRole(c) != role {
				return errs.NewForbiddenError("Insufficient permissions", false)
			}
			return next(c)
		}
	}
}
