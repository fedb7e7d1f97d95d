package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/service"
)

// Authenticate verifies the access-token cookie against the public key and
// stashes the decoded identity in the echo context. Anything wrong with the
// token short-circuits the request with 401 before a handler runs.
func Authenticate(tokens *service.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(models.AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token is missing")
			}

			payload, err := tokens.ParseAccessToken(cookie.Value)
			if err != nil {
				return err
			}

			c.Set(models.MwAuthKey, *payload)
			return next(c)
		}
	}
}

// ValidateRefreshToken verifies the refresh-token cookie against the symmetric
// secret and confirms the session it references still exists. A token with a
// valid signature whose session row is gone is a revoked token.
func ValidateRefreshToken(tokens *service.TokenService, auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(models.RefreshTokenCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Refresh token is missing")
			}

			payload, err := tokens.ParseRefreshToken(cookie.Value)
			if err != nil {
				return err
			}

			exists, err := auth.SessionExists(c.Request().Context(), payload.SessionID)
			if err != nil {
				return err
			}
			if !exists {
				return echo.NewHTTPError(http.StatusUnauthorized, "Refresh token is no longer valid")
			}

			c.Set(models.MwAuthKey, *payload)
			return next(c)
		}
	}
}

// ParseRefreshToken checks only the refresh token's signature and claims,
// without touching the session store. Logout uses it so that logging out with
// an already-rotated session id stays idempotent.
func ParseRefreshToken(tokens *service.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(models.RefreshTokenCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Refresh token is missing")
			}

			payload, err := tokens.ParseRefreshToken(cookie.Value)
			if err != nil {
				return err
			}

			c.Set(models.MwAuthKey, *payload)
			return next(c)
		}
	}
}

// RequireRole permits the request only if the already-authenticated identity
// carries one of the allowed roles. It must run after Authenticate; it has no
// authentication capability of its own.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			payload, ok := c.Get(models.MwAuthKey).(models.AuthPayload)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token is missing")
			}

			for _, role := range roles {
				if payload.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "You don't have enough permissions")
		}
	}
}
