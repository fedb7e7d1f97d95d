package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/storage"
	"github.com/mernspace/auth-service/internal/util"
)

// AuthService drives one session's lifecycle: register/login issue the first
// token pair, refresh rotates it, logout revokes it. Every successful issue
// creates exactly one refresh_sessions row; failures create none.
type AuthService struct {
	storage     storage.Storage
	tokens      *TokenService
	credentials *CredentialService
	log         *zap.SugaredLogger
}

func NewAuthService(s storage.Storage, tokens *TokenService, credentials *CredentialService, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		storage:     s,
		tokens:      tokens,
		credentials: credentials,
		log:         log,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, *models.TokenPair, error) {
	s.log.Debugw("New request to register a user", "email", req.Email, "password", "*******")

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !role.Valid() {
		return nil, nil, util.NewAPIError(http.StatusBadRequest, util.ErrTypeValidation, "body", "Unknown role %q", req.Role)
	}

	hash, err := s.credentials.HashPassword(req.Password)
	if err != nil {
		return nil, nil, util.NewAPIError(http.StatusInternalServerError, util.ErrTypeConfiguration, "server", "Failed to hash password")
	}

	user, err := s.storage.CreateUser(ctx, models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Role:      role,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, nil, util.NewAPIError(http.StatusBadRequest, util.ErrTypeConflict, "body", "Email is already taken!")
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Infow("User has been registered", "id", user.ID)

	// A signing fault here leaves the user row behind with no session; the
	// account is still reachable through a later login.
	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, *models.TokenPair, error) {
	s.log.Debugw("New request to login a user", "email", req.Email, "password", "*******")

	user, err := s.storage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, nil, invalidCredentials()
		}
		return nil, nil, fmt.Errorf("get user by email: %w", err)
	}

	if !s.credentials.ComparePassword(req.Password, user.Password) {
		return nil, nil, invalidCredentials()
	}
	s.log.Infow("User has been logged in", "id", user.ID)

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Self returns the caller's own record by the sub claim of a verified access
// token. The password never leaves the service layer in responses.
func (s *AuthService) Self(ctx context.Context, sub string) (*models.User, error) {
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, util.NewAPIError(http.StatusBadRequest, util.ErrTypeNotFound, "cookies", "User with the token could not be found")
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, util.NewAPIError(http.StatusBadRequest, util.ErrTypeNotFound, "cookies", "User with the token could not be found")
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// Refresh rotates the session: a new session row and token pair are created
// first, and only then the old session is deleted. A crash in between leaves
// two live sessions rather than locking the user out.
func (s *AuthService) Refresh(ctx context.Context, payload models.AuthPayload) (*models.User, *models.TokenPair, error) {
	user, err := s.Self(ctx, payload.Sub)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.storage.DeleteSession(ctx, payload.SessionID); err != nil {
		return nil, nil, fmt.Errorf("delete rotated session: %w", err)
	}
	s.log.Infow("Refresh token has been rotated", "id", user.ID, "oldSessionId", payload.SessionID)

	return user, pair, nil
}

// Logout deletes the current session. Deleting an already-rotated or
// already-deleted session id is not an error.
func (s *AuthService) Logout(ctx context.Context, payload models.AuthPayload) error {
	if err := s.storage.DeleteSession(ctx, payload.SessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.log.Infow("User has been logged out", "sub", payload.Sub, "sessionId", payload.SessionID)
	return nil
}

// SessionExists reports whether the refresh session behind a token is still
// live; the refresh middleware rejects tokens whose session row is gone.
func (s *AuthService) SessionExists(ctx context.Context, sessionID int64) (bool, error) {
	_, err := s.storage.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get session: %w", err)
	}
	return true, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	session, err := s.storage.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	payload := models.AuthPayload{
		Sub:  strconv.FormatInt(user.ID, 10),
		Role: user.Role,
	}

	accessToken, err := s.tokens.GenerateAccessToken(payload)
	if err != nil {
		return nil, util.NewAPIError(http.StatusInternalServerError, util.ErrTypeConfiguration, "server", "Failed to sign access token")
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(payload, session.ID)
	if err != nil {
		return nil, util.NewAPIError(http.StatusInternalServerError, util.ErrTypeConfiguration, "server", "Failed to sign refresh token")
	}

	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func invalidCredentials() error {
	return util.NewAPIError(http.StatusBadRequest, util.ErrTypeInvalidCredentials, "body", "Email or password does not match!")
}
