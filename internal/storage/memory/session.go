package memory

import (
	"context"
	"time"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/storage"
)

func (s *Storage) CreateSession(_ context.Context, userID int64) (*models.RefreshSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSessionID++
	session := models.RefreshSession{
		ID:        s.nextSessionID,
		UserID:    userID,
		CreatedAt: now(),
		ExpiresAt: now().Add(365 * 24 * time.Hour),
	}
	s.sessions[session.ID] = session
	return &session, nil
}

func (s *Storage) GetSession(_ context.Context, id int64) (*models.RefreshSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	return &session, nil
}

func (s *Storage) DeleteSession(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
