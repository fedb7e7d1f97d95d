package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mernspace/auth-service/internal/models"
)

// (POST /tenants).
func (c *Controller) CreateTenant(ctx echo.Context) error {
	var req models.TenantRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	tenant, err := c.tenants.Create(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, map[string]int64{"id": tenant.ID})
}

// (GET /tenants).
func (c *Controller) ListTenants(ctx echo.Context) error {
	q := models.TenantQuery{
		Q:           ctx.QueryParam("q"),
		CurrentPage: intQueryParam(ctx, "currentPage"),
		PerPage:     intQueryParam(ctx, "perPage"),
	}
	q.Normalize()

	tenants, total, err := c.tenants.List(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, models.ListResponse{
		CurrentPage: q.CurrentPage,
		PerPage:     q.PerPage,
		Total:       total,
		Data:        tenants,
	})
}

// (GET /tenants/{id}).
func (c *Controller) GetTenant(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	tenant, err := c.tenants.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tenant)
}

// (PATCH /tenants/{id}).
func (c *Controller) UpdateTenant(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	var req models.TenantRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := c.tenants.Update(ctx.Request().Context(), id, req); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, map[string]int64{"id": id})
}

// (DELETE /tenants/{id}).
func (c *Controller) DeleteTenant(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	if err := c.tenants.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, map[string]int64{"id": id})
}
