package ports

import (
	"context"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// TrackUpdate carries a partial track update; nil fields are left untouched.
type TrackUpdate struct {
	Title     *string
	Artist    *string
	Album     *string
	Duration  *int
	FilePath  *string
	Genre     *string
	Year      *string
	AlbumArt  *string
	UserID    *int64
	IsPremium *bool
	Quality   *string
}

// TrackRepository defines persistence operations for tracks.
//
// The ListFor* methods scope results to tracks owned by userID or ownerless
// tracks (UserID zero), which are visible to everyone. Metadata filters match
// case-insensitively but exactly (no substring matching).
type TrackRepository interface {
	Create(ctx context.Context, track *domain.Track) (*domain.Track, error)
	FindByID(ctx context.Context, id int64) (*domain.Track, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Track, error)
	ListByArtist(ctx context.Context, artist string, userID int64) ([]*domain.Track, error)
	ListByAlbum(ctx context.Context, album string, userID int64) ([]*domain.Track, error)
	ListByGenre(ctx context.Context, genre string, userID int64) ([]*domain.Track, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Track, error)
	ListPremium(ctx context.Context) ([]*domain.Track, error)
	Update(ctx context.Context, id int64, upd TrackUpdate) (*domain.Track, error)
	// Delete removes the track only. Junction rows referencing it are left in
	// place and filtered out of joined reads.
	Delete(ctx context.Context, id int64) error
}
