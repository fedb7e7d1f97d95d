package models

import "time"

// RefreshSession is the server-side record backing one refresh token.
// The row existing is the sole proof the token is still valid; rotation
// always deletes the old row and inserts a new one, never updates in place.
type RefreshSession struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
