package memory

import (
	"context"
	"sort"

	"github.com/tunedeck/music-system/internal/core/domain"
)

const defaultRecentLimit = 10

// RecentRepository is the map-backed ports.RecentlyPlayedRepository.
type RecentRepository struct {
	store *Store
}

func NewRecentRepository(store *Store) *RecentRepository {
	return &RecentRepository{store: store}
}

// Upsert overwrites the PlayedAt of an existing (user, track) row instead of
// inserting a duplicate.
func (r *RecentRepository) Upsert(ctx context.Context, entry *domain.RecentlyPlayed) (*domain.RecentlyPlayed, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rp := range s.recentPlays {
		if rp.UserID == entry.UserID && rp.TrackID == entry.TrackID {
			rp.PlayedAt = entry.PlayedAt
			clone := *rp
			return &clone, nil
		}
	}

	clone := *entry
	clone.ID = s.nextRecentID
	s.nextRecentID++
	s.recentPlays[clone.ID] = &clone

	out := clone
	return &out, nil
}

func (r *RecentRepository) ListForUser(ctx context.Context, userID int64, limit int) ([]*domain.RecentlyPlayed, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = defaultRecentLimit
	}

	out := make([]*domain.RecentlyPlayed, 0)
	for _, rp := range s.recentPlays {
		if rp.UserID == userID {
			clone := *rp
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PlayedAt.After(out[j].PlayedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
