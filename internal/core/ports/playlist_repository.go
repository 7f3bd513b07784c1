package ports

import (
	"context"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// PlaylistUpdate carries a partial playlist update; nil fields are left untouched.
type PlaylistUpdate struct {
	Name     *string
	CoverArt *string
	IsPublic *bool
}

// PlaylistRepository defines persistence operations for playlists and their
// junction rows.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error)
	FindByID(ctx context.Context, id int64) (*domain.Playlist, error)
	// ListForUser returns playlists owned by userID; there is no ownerless case.
	ListForUser(ctx context.Context, userID int64) ([]*domain.Playlist, error)
	ListPublic(ctx context.Context) ([]*domain.Playlist, error)
	Update(ctx context.Context, id int64, upd PlaylistUpdate) (*domain.Playlist, error)
	// Delete cascades: all junction rows referencing the playlist are removed
	// first, then the playlist itself.
	Delete(ctx context.Context, id int64) error

	// AddTrack appends a junction row. There is no dedup: adding the same
	// track twice yields two positioned rows.
	AddTrack(ctx context.Context, row *domain.PlaylistTrack) (*domain.PlaylistTrack, error)
	// TracksFor returns junction rows sorted ascending by position.
	TracksFor(ctx context.Context, playlistID int64) ([]*domain.PlaylistTrack, error)
	// RemoveTrack deletes the first row matching (playlistID, trackID).
	RemoveTrack(ctx context.Context, playlistID, trackID int64) error
	// UpdateTrackPosition moves the junction row with the given row id.
	UpdateTrackPosition(ctx context.Context, id int64, position int) (*domain.PlaylistTrack, error)
}
