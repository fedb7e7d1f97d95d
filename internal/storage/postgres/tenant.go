package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/storage"
)

type TenantRepository struct {
	db storage.DBTX
}

func NewTenantRepository(db storage.DBTX) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) CreateTenant(ctx context.Context, tenant models.Tenant) (*models.Tenant, error) {
	var created models.Tenant
	query := `INSERT INTO tenants (name, address, created_at, updated_at)
	          VALUES ($1, $2, now(), now())
	          RETURNING id, name, address, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, tenant.Name, tenant.Address).Scan(
		&created.ID,
		&created.Name,
		&created.Address,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return &created, nil
}

func (r *TenantRepository) GetTenantByID(ctx context.Context, id int64) (*models.Tenant, error) {
	var tenant models.Tenant
	query := `SELECT id, name, address, created_at, updated_at FROM tenants WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Address,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &tenant, nil
}

func (r *TenantRepository) UpdateTenant(ctx context.Context, id int64, upd models.TenantRequest) error {
	query := `UPDATE tenants SET name = $1, address = $2, updated_at = now() WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, upd.Name, upd.Address, id)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return storage.ErrTenantNotFound
	}
	return nil
}

func (r *TenantRepository) DeleteTenant(ctx context.Context, id int64) error {
	query := `DELETE FROM tenants WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	return nil
}

func (r *TenantRepository) ListTenants(ctx context.Context, q models.TenantQuery) ([]models.Tenant, int64, error) {
	q.Normalize()

	where := ` WHERE 1=1`
	args := []any{}
	if q.Q != "" {
		args = append(args, "%"+q.Q+"%")
		where += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM tenants`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}

	args = append(args, q.PerPage, (q.CurrentPage-1)*q.PerPage)
	query := `SELECT id, name, address, created_at, updated_at FROM tenants` + where +
		fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []models.Tenant{}
	for rows.Next() {
		var tenant models.Tenant
		if err := rows.Scan(
			&tenant.ID,
			&tenant.Name,
			&tenant.Address,
			&tenant.CreatedAt,
			&tenant.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tenant row: %w", err)
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate tenant rows: %w", err)
	}

	return tenants, total, nil
}
