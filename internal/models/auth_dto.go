package models

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role,omitempty"`
	TenantID  *int64 `json:"tenantId,omitempty"`
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	TenantID  *int64 `json:"tenantId,omitempty"`
}

type TenantRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ListResponse struct {
	CurrentPage int         `json:"currentPage"`
	PerPage     int         `json:"perPage"`
	Total       int64       `json:"total"`
	Data        interface{} `json:"data"`
}
