package ports

import (
	"context"
	"time"
)

// SessionStore manages browser sessions. The session id is an opaque string
// placed in an HttpOnly cookie; the record expires after the configured TTL.
type SessionStore interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (string, error)
	// Lookup resolves a session id to its user, returning
	// domain.ErrSessionNotFound for unknown or expired sessions.
	Lookup(ctx context.Context, sessionID string) (int64, error)
	Revoke(ctx context.Context, sessionID string) error
}
