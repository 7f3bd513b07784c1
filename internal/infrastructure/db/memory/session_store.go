package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// SessionStore is an in-process ports.SessionStore used when no Redis address
// is configured. Sessions do not survive a restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]sessionRecord
}

type sessionRecord struct {
	userID    int64
	expiresAt time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]sessionRecord)}
}

func (s *SessionStore) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	id := hex.EncodeToString(b)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sessionRecord{userID: userID, expiresAt: time.Now().Add(ttl)}
	return id, nil
}

func (s *SessionStore) Lookup(ctx context.Context, sessionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return 0, domain.ErrSessionNotFound
	}
	if time.Now().After(rec.expiresAt) {
		delete(s.sessions, sessionID)
		return 0, domain.ErrSessionNotFound
	}
	return rec.userID, nil
}

func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
