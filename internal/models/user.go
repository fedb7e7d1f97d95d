package models

import (
	"time"
)

// Role is the closed set of roles known to the service. Unknown values are
// rejected at the boundary instead of being carried around as free strings.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	TenantID  *int64    `json:"tenantId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Tenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserQuery carries validated list-endpoint query params.
type UserQuery struct {
	Q           string
	Role        Role
	CurrentPage int
	PerPage     int
}

type TenantQuery struct {
	Q           string
	CurrentPage int
	PerPage     int
}

func (q *UserQuery) Normalize() {
	if q.CurrentPage < 1 {
		q.CurrentPage = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 6
	}
}

func (q *TenantQuery) Normalize() {
	if q.CurrentPage < 1 {
		q.CurrentPage = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 6
	}
}
