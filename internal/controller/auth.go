package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mernspace/auth-service/internal/models"
)

// (POST /auth/register).
func (c *Controller) Register(ctx echo.Context) error {
	var req models.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, pair, err := c.auth.Register(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	c.setAuthCookies(ctx, pair)
	return ctx.JSON(http.StatusCreated, models.AuthResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// (POST /auth/login).
func (c *Controller) Login(ctx echo.Context) error {
	var req models.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, pair, err := c.auth.Login(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	c.setAuthCookies(ctx, pair)
	return ctx.JSON(http.StatusOK, models.AuthResponse{
		Message: "User login successfully",
		UserID:  user.ID,
	})
}

// (GET /auth/self).
func (c *Controller) Self(ctx echo.Context) error {
	payload, err := authPayload(ctx)
	if err != nil {
		return err
	}

	user, err := c.auth.Self(ctx.Request().Context(), payload.Sub)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, user)
}

// (POST /auth/refresh).
func (c *Controller) Refresh(ctx echo.Context) error {
	payload, err := authPayload(ctx)
	if err != nil {
		return err
	}

	user, pair, err := c.auth.Refresh(ctx.Request().Context(), payload)
	if err != nil {
		return err
	}

	c.setAuthCookies(ctx, pair)
	return ctx.JSON(http.StatusOK, models.AuthResponse{
		Message: "Tokens refreshed successfully",
		UserID:  user.ID,
	})
}

// (POST /auth/logout).
func (c *Controller) Logout(ctx echo.Context) error {
	payload, err := authPayload(ctx)
	if err != nil {
		return err
	}

	if err := c.auth.Logout(ctx.Request().Context(), payload); err != nil {
		return err
	}

	c.clearAuthCookies(ctx)
	return ctx.JSON(http.StatusOK, map[string]string{})
}
