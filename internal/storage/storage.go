package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mernspace/auth-service/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrEmailTaken      = errors.New("email is already taken")
)

// DBTX is the subset of *sql.DB / *sql.Tx the repositories need, so the same
// repository code runs inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Storage interface {
	UserRepository
	SessionRepository
	TenantRepository
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.UpdateUserRequest) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, q models.UserQuery) ([]models.User, int64, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, userID int64) (*models.RefreshSession, error)
	GetSession(ctx context.Context, id int64) (*models.RefreshSession, error)
	DeleteSession(ctx context.Context, id int64) error
}

type TenantRepository interface {
	CreateTenant(ctx context.Context, tenant models.Tenant) (*models.Tenant, error)
	GetTenantByID(ctx context.Context, id int64) (*models.Tenant, error)
	UpdateTenant(ctx context.Context, id int64, upd models.TenantRequest) error
	DeleteTenant(ctx context.Context, id int64) error
	ListTenants(ctx context.Context, q models.TenantQuery) ([]models.Tenant, int64, error)
}
