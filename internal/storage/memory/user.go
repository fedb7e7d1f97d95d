package memory

import (
	"context"
	"sort"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/storage"
)

func (s *Storage) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, storage.ErrEmailTaken
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = user
	return &user, nil
}

func (s *Storage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (s *Storage) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &user, nil
}

func (s *Storage) UpdateUser(_ context.Context, id int64, upd models.UpdateUserRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return storage.ErrUserNotFound
	}
	user.FirstName = upd.FirstName
	user.LastName = upd.LastName
	user.Role = upd.Role
	user.TenantID = upd.TenantID
	user.UpdatedAt = now()
	s.users[id] = user
	return nil
}

func (s *Storage) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

func (s *Storage) ListUsers(_ context.Context, q models.UserQuery) ([]models.User, int64, error) {
	q.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.User{}
	for _, user := range s.users {
		if !matchQuery(q.Q, user.FirstName+" "+user.LastName, user.Email) {
			continue
		}
		if q.Role != "" && user.Role != q.Role {
			continue
		}
		matched = append(matched, user)
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
