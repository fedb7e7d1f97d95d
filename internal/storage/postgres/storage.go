package postgres

import (
	"database/sql"
)

type Storage struct {
	db *sql.DB
	*UserRepository
	*SessionRepository
	*TenantRepository
}

func NewStorage(db *sql.DB) *Storage {
	return &Storage{
		db:                db,
		UserRepository:    NewUserRepository(db),
		SessionRepository: NewSessionRepository(db),
		TenantRepository:  NewTenantRepository(db),
	}
}
