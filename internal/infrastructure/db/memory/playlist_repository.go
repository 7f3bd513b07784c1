package memory

import (
	"context"
	"sort"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
)

// PlaylistRepository is the map-backed ports.PlaylistRepository.
type PlaylistRepository struct {
	store *Store
}

func NewPlaylistRepository(store *Store) *PlaylistRepository {
	return &PlaylistRepository{store: store}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *playlist
	clone.ID = s.nextPlaylistID
	s.nextPlaylistID++
	s.playlists[clone.ID] = &clone

	out := clone
	return &out, nil
}

func (r *PlaylistRepository) FindByID(ctx context.Context, id int64) (*domain.Playlist, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.playlists[id]
	if !ok {
		return nil, domain.ErrPlaylistNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *PlaylistRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Playlist, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Playlist, 0)
	for _, p := range s.playlists {
		if p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *PlaylistRepository) ListPublic(ctx context.Context) ([]*domain.Playlist, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Playlist, 0)
	for _, p := range s.playlists {
		if p.IsPublic {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, id int64, upd ports.PlaylistUpdate) (*domain.Playlist, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.playlists[id]
	if !ok {
		return nil, domain.ErrPlaylistNotFound
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.CoverArt != nil {
		p.CoverArt = *upd.CoverArt
	}
	if upd.IsPublic != nil {
		p.IsPublic = *upd.IsPublic
	}

	clone := *p
	return &clone, nil
}

// Delete cascades: junction rows referencing the playlist are removed first,
// then the playlist itself.
func (r *PlaylistRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.playlists[id]; !ok {
		return domain.ErrPlaylistNotFound
	}

	for rowID, pt := range s.playlistTracks {
		if pt.PlaylistID == id {
			delete(s.playlistTracks, rowID)
		}
	}
	delete(s.playlists, id)
	return nil
}

func (r *PlaylistRepository) AddTrack(ctx context.Context, row *domain.PlaylistTrack) (*domain.PlaylistTrack, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *row
	clone.ID = s.nextPlaylistTrackID
	s.nextPlaylistTrackID++
	s.playlistTracks[clone.ID] = &clone

	out := clone
	return &out, nil
}

func (r *PlaylistRepository) TracksFor(ctx context.Context, playlistID int64) ([]*domain.PlaylistTrack, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.PlaylistTrack, 0)
	for _, pt := range s.playlistTracks {
		if pt.PlaylistID == playlistID {
			clone := *pt
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *PlaylistRepository) RemoveTrack(ctx context.Context, playlistID, trackID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for rowID, pt := range s.playlistTracks {
		if pt.PlaylistID == playlistID && pt.TrackID == trackID {
			delete(s.playlistTracks, rowID)
			return nil
		}
	}
	return domain.ErrPlaylistTrackNotFound
}

func (r *PlaylistRepository) UpdateTrackPosition(ctx context.Context, id int64, position int) (*domain.PlaylistTrack, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	pt, ok := s.playlistTracks[id]
	if !ok {
		return nil, domain.ErrPlaylistTrackNotFound
	}
	pt.Position = position

	clone := *pt
	return &clone, nil
}
