package ports

import (
	"context"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// RecentlyPlayedRepository defines persistence for play history.
type RecentlyPlayedRepository interface {
	// Upsert records a play. If a row for (UserID, TrackID) already exists its
	// PlayedAt is overwritten; otherwise a new row is inserted.
	Upsert(ctx context.Context, entry *domain.RecentlyPlayed) (*domain.RecentlyPlayed, error)
	// ListForUser returns rows sorted descending by PlayedAt, truncated to limit.
	ListForUser(ctx context.Context, userID int64, limit int) ([]*domain.RecentlyPlayed, error)
}
