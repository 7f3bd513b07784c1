package memory

import (
	"context"
	"strings"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
)

// TrackRepository is the map-backed ports.TrackRepository.
type TrackRepository struct {
	store *Store
}

func NewTrackRepository(store *Store) *TrackRepository {
	return &TrackRepository{store: store}
}

func (r *TrackRepository) Create(ctx context.Context, track *domain.Track) (*domain.Track, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *track
	clone.ID = s.nextTrackID
	s.nextTrackID++
	if clone.Quality == "" {
		clone.Quality = domain.QualityStandard
	}
	s.tracks[clone.ID] = &clone

	out := clone
	return &out, nil
}

func (r *TrackRepository) FindByID(ctx context.Context, id int64) (*domain.Track, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tracks[id]
	if !ok {
		return nil, domain.ErrTrackNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *TrackRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Track, error) {
	return r.filter(func(t *domain.Track) bool {
		return t.VisibleTo(userID)
	}), nil
}

func (r *TrackRepository) ListByArtist(ctx context.Context, artist string, userID int64) ([]*domain.Track, error) {
	return r.filter(func(t *domain.Track) bool {
		return t.VisibleTo(userID) && t.Artist != "" && strings.EqualFold(t.Artist, artist)
	}), nil
}

func (r *TrackRepository) ListByAlbum(ctx context.Context, album string, userID int64) ([]*domain.Track, error) {
	return r.filter(func(t *domain.Track) bool {
		return t.VisibleTo(userID) && t.Album != "" && strings.EqualFold(t.Album, album)
	}), nil
}

func (r *TrackRepository) ListByGenre(ctx context.Context, genre string, userID int64) ([]*domain.Track, error) {
	return r.filter(func(t *domain.Track) bool {
		return t.VisibleTo(userID) && t.Genre != "" && strings.EqualFold(t.Genre, genre)
	}), nil
}

func (r *TrackRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Track, error) {
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.filter(func(t *domain.Track) bool {
		_, ok := wanted[t.ID]
		return ok
	}), nil
}

func (r *TrackRepository) ListPremium(ctx context.Context) ([]*domain.Track, error) {
	return r.filter(func(t *domain.Track) bool {
		return t.IsPremium
	}), nil
}

func (r *TrackRepository) Update(ctx context.Context, id int64, upd ports.TrackUpdate) (*domain.Track, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tracks[id]
	if !ok {
		return nil, domain.ErrTrackNotFound
	}

	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Artist != nil {
		t.Artist = *upd.Artist
	}
	if upd.Album != nil {
		t.Album = *upd.Album
	}
	if upd.Duration != nil {
		t.Duration = *upd.Duration
	}
	if upd.FilePath != nil {
		t.FilePath = *upd.FilePath
	}
	if upd.Genre != nil {
		t.Genre = *upd.Genre
	}
	if upd.Year != nil {
		t.Year = *upd.Year
	}
	if upd.AlbumArt != nil {
		t.AlbumArt = *upd.AlbumArt
	}
	if upd.UserID != nil {
		t.UserID = *upd.UserID
	}
	if upd.IsPremium != nil {
		t.IsPremium = *upd.IsPremium
	}
	if upd.Quality != nil {
		t.Quality = *upd.Quality
	}

	clone := *t
	return &clone, nil
}

// Delete removes the track only. Junction rows referencing it stay in place
// and are filtered out of joined reads.
func (r *TrackRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tracks[id]; !ok {
		return domain.ErrTrackNotFound
	}
	delete(s.tracks, id)
	return nil
}

func (r *TrackRepository) filter(keep func(*domain.Track) bool) []*domain.Track {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Track, 0)
	for _, t := range s.tracks {
		if keep(t) {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out
}
