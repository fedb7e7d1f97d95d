package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mernspace/auth-service/internal/models"
)

// (POST /users).
func (c *Controller) CreateUser(ctx echo.Context) error {
	var req models.CreateUserRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, err := c.users.Create(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, map[string]int64{"id": user.ID})
}

// (GET /users).
func (c *Controller) ListUsers(ctx echo.Context) error {
	q := models.UserQuery{
		Q:           ctx.QueryParam("q"),
		Role:        models.Role(ctx.QueryParam("role")),
		CurrentPage: intQueryParam(ctx, "currentPage"),
		PerPage:     intQueryParam(ctx, "perPage"),
	}
	q.Normalize()

	users, total, err := c.users.List(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, models.ListResponse{
		CurrentPage: q.CurrentPage,
		PerPage:     q.PerPage,
		Total:       total,
		Data:        users,
	})
}

// (GET /users/{id}).
func (c *Controller) GetUser(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	user, err := c.users.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, user)
}

// (PATCH /users/{id}).
func (c *Controller) UpdateUser(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := c.users.Update(ctx.Request().Context(), id, req); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, map[string]int64{"id": id})
}

// (DELETE /users/{id}).
func (c *Controller) DeleteUser(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	if err := c.users.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, map[string]int64{"id": id})
}
