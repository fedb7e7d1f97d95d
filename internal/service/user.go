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

// UserService is the admin-facing user management surface. Token issuance is
// not involved here; accounts created this way log in through /auth/login.
type UserService struct {
	storage     storage.Storage
	credentials *CredentialService
	log         *zap.SugaredLogger
}

func NewUserService(s storage.Storage, credentials *CredentialService, log *zap.SugaredLogger) *UserService {
	return &UserService{storage: s, credentials: credentials, log: log}
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleManager
	}
	if !role.Valid() {
		return nil, util.NewAPIError(http.StatusBadRequest, util.ErrTypeValidation, "body", "Unknown role %q", req.Role)
	}

	hash, err := s.credentials.HashPassword(req.Password)
	if err != nil {
		return nil, util.NewAPIError(http.StatusInternalServerError, util.ErrTypeConfiguration, "server", "Failed to hash password")
	}

	user, err := s.storage.CreateUser(ctx, models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Role:      role,
		TenantID:  req.TenantID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, util.NewAPIError(http.StatusBadRequest, util.ErrTypeConflict, "body", "Email is already taken!")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Infow("User created successfully", "id", user.ID)
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, util.NewAPIError(http.StatusNotFound, util.ErrTypeNotFound, "params", "User does not exist")
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, req models.UpdateUserRequest) error {
	if !req.Role.Valid() {
		return util.NewAPIError(http.StatusBadRequest, util.ErrTypeValidation, "body", "Unknown role %q", req.Role)
	}

	if err := s.storage.UpdateUser(ctx, id, req); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return util.NewAPIError(http.StatusNotFound, util.ErrTypeNotFound, "params", "User does not exist")
		}
		return fmt.Errorf("update user: %w", err)
	}
	s.log.Infow("User has been updated", "id", id)
	return nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Infow("User has been deleted", "id", id)
	return nil
}

func (s *UserService) List(ctx context.Context, q models.UserQuery) ([]models.User, int64, error) {
	users, total, err := s.storage.ListUsers(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}
