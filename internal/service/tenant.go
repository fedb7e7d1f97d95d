package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/storage"
	"github.com/mernspace/auth-service/internal/util"
)

type TenantService struct {
	storage storage.Storage
	log     *zap.SugaredLogger
}

func NewTenantService(s storage.Storage, log *zap.SugaredLogger) *TenantService {
	return &TenantService{storage: s, log: log}
}

func (s *TenantService) Create(ctx context.Context, req models.TenantRequest) (*models.Tenant, error) {
	tenant, err := s.storage.CreateTenant(ctx, models.Tenant{Name: req.Name, Address: req.Address})
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	s.log.Infow("Tenant has been created", "id", tenant.ID)
	return tenant, nil
}

func (s *TenantService) GetByID(ctx context.Context, id int64) (*models.Tenant, error) {
	tenant, err := s.storage.GetTenantByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrTenantNotFound) {
			return nil, util.NewAPIError(http.StatusNotFound, util.ErrTypeNotFound, "params", "Tenant does not exist")
		}
		return nil, fmt.Errorf("get tenant by id: %w", err)
	}
	return tenant, nil
}

func (s *TenantService) Update(ctx context.Context, id int64, req models.TenantRequest) error {
	if err := s.storage.UpdateTenant(ctx, id, req); err != nil {
		if errors.Is(err, storage.ErrTenantNotFound) {
			return util.NewAPIError(http.StatusNotFound, util.ErrTypeNotFound, "params", "Tenant does not exist")
		}
		return fmt.Errorf("update tenant: %w", err)
	}
	s.log.Infow("Tenant has been updated", "id", id)
	return nil
}

func (s *TenantService) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteTenant(ctx, id); err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	s.log.Infow("Tenant has been deleted", "id", id)
	return nil
}

func (s *TenantService) List(ctx context.Context, q models.TenantQuery) ([]models.Tenant, int64, error) {
	tenants, total, err := s.storage.ListTenants(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, total, nil
}
