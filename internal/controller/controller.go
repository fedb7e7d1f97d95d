package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/service"
	"github.com/mernspace/auth-service/internal/util"
)

type Controller struct {
	log     *zap.SugaredLogger
	auth    *service.AuthService
	users   *service.UserService
	tenants *service.TenantService
	tokens  *service.TokenService
	cookies *util.CookieConfig
}

func NewController(
	log *zap.SugaredLogger,
	auth *service.AuthService,
	users *service.UserService,
	tenants *service.TenantService,
	tokens *service.TokenService,
	cookies *util.CookieConfig,
) *Controller {
	return &Controller{
		log:     log,
		auth:    auth,
		users:   users,
		tenants: tenants,
		tokens:  tokens,
		cookies: cookies,
	}
}

// (GET /ping).
func (c *Controller) CheckServer(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, "ok")
}

func (c *Controller) setAuthCookies(ctx echo.Context, pair *models.TokenPair) {
	ctx.SetCookie(&http.Cookie{
		Name:     models.AccessTokenCookie,
		Value:    pair.AccessToken,
		Domain:   c.cookies.Domain,
		Path:     "/",
		MaxAge:   int(c.tokens.AccessTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	ctx.SetCookie(&http.Cookie{
		Name:     models.RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Domain:   c.cookies.Domain,
		Path:     "/",
		MaxAge:   int(c.tokens.RefreshTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c *Controller) clearAuthCookies(ctx echo.Context) {
	for _, name := range []string{models.AccessTokenCookie, models.RefreshTokenCookie} {
		ctx.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Domain:   c.cookies.Domain,
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

func authPayload(ctx echo.Context) (models.AuthPayload, error) {
	payload, ok := ctx.Get(models.MwAuthKey).(models.AuthPayload)
	if !ok {
		return models.AuthPayload{}, echo.NewHTTPError(http.StatusUnauthorized, "Access token is missing")
	}
	return payload, nil
}

func idParam(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid url param!")
	}
	return id, nil
}

func intQueryParam(ctx echo.Context, name string) int {
	v, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
