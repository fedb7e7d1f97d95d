// Package memory holds mutex-guarded map implementations of the repository
// interfaces. They back the unit tests and local runs without postgres.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/mernspace/auth-service/internal/models"
)

type Storage struct {
	mu sync.RWMutex

	users    map[int64]models.User
	sessions map[int64]models.RefreshSession
	tenants  map[int64]models.Tenant

	nextUserID    int64
	nextSessionID int64
	nextTenantID  int64
}

func NewStorage() *Storage {
	return &Storage{
		users:    make(map[int64]models.User),
		sessions: make(map[int64]models.RefreshSession),
		tenants:  make(map[int64]models.Tenant),
	}
}

// SessionCountForUser reports live sessions for a user; tests use it to check
// rotation and logout bookkeeping.
func (s *Storage) SessionCountForUser(userID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, session := range s.sessions {
		if session.UserID == userID {
			n++
		}
	}
	return n
}

func (s *Storage) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func matchQuery(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func now() time.Time { return time.Now().UTC() }
