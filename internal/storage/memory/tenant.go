package memory

import (
	"context"
	"sort"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/storage"
)

func (s *Storage) CreateTenant(_ context.Context, tenant models.Tenant) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTenantID++
	tenant.ID = s.nextTenantID
	tenant.CreatedAt = now()
	tenant.UpdatedAt = tenant.CreatedAt
	s.tenants[tenant.ID] = tenant
	return &tenant, nil
}

func (s *Storage) GetTenantByID(_ context.Context, id int64) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenant, ok := s.tenants[id]
	if !ok {
		return nil, storage.ErrTenantNotFound
	}
	return &tenant, nil
}

func (s *Storage) UpdateTenant(_ context.Context, id int64, upd models.TenantRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant, ok := s.tenants[id]
	if !ok {
		return storage.ErrTenantNotFound
	}
	tenant.Name = upd.Name
	tenant.Address = upd.Address
	tenant.UpdatedAt = now()
	s.tenants[id] = tenant
	return nil
}

func (s *Storage) DeleteTenant(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tenants, id)
	return nil
}

func (s *Storage) ListTenants(_ context.Context, q models.TenantQuery) ([]models.Tenant, int64, error) {
	q.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Tenant{}
	for _, tenant := range s.tenants {
		if !matchQuery(q.Q, tenant.Name) {
			continue
		}
		matched = append(matched, tenant)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start := (q.CurrentPage - 1) * q.PerPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
