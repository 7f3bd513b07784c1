package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
)

// LibraryService orchestrates tracks, playlists and play history. Cross-entity
// joins happen here at read time; nothing joined is ever stored.
type LibraryService struct {
	tracks    ports.TrackRepository
	playlists ports.PlaylistRepository
	recent    ports.RecentlyPlayedRepository
	logger    zerolog.Logger
}

func NewLibraryService(tracks ports.TrackRepository, playlists ports.PlaylistRepository, recent ports.RecentlyPlayedRepository, logger zerolog.Logger) *LibraryService {
	return &LibraryService{
		tracks:    tracks,
		playlists: playlists,
		recent:    recent,
		logger:    logger,
	}
}

// --- Tracks ---

func (s *LibraryService) CreateTrack(ctx context.Context, input ports.CreateTrackInput) (*domain.Track, error) {
	quality := input.Quality
	if quality == "" {
		quality = domain.QualityStandard
	}

	track, err := s.tracks.Create(ctx, &domain.Track{
		Title:     input.Title,
		Artist:    input.Artist,
		Album:     input.Album,
		Duration:  input.Duration,
		FilePath:  input.FilePath,
		Genre:     input.Genre,
		Year:      input.Year,
		AlbumArt:  input.AlbumArt,
		UserID:    input.UserID,
		AddedAt:   time.Now().UTC(),
		IsPremium: input.IsPremium,
		Quality:   quality,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create track")
		return nil, err
	}

	s.logger.Info().Int64("track_id", track.ID).Str("title", track.Title).Msg("track created")
	return track, nil
}

func (s *LibraryService) Track(ctx context.Context, id int64) (*domain.Track, error) {
	return s.tracks.FindByID(ctx, id)
}

func (s *LibraryService) Tracks(ctx context.Context, userID int64) ([]*domain.Track, error) {
	return s.tracks.ListForUser(ctx, userID)
}

func (s *LibraryService) TracksByArtist(ctx context.Context, artist string, userID int64) ([]*domain.Track, error) {
	return s.tracks.ListByArtist(ctx, artist, userID)
}

func (s *LibraryService) TracksByAlbum(ctx context.Context, album string, userID int64) ([]*domain.Track, error) {
	return s.tracks.ListByAlbum(ctx, album, userID)
}

func (s *LibraryService) TracksByGenre(ctx context.Context, genre string, userID int64) ([]*domain.Track, error) {
	return s.tracks.ListByGenre(ctx, genre, userID)
}

func (s *LibraryService) PremiumTracks(ctx context.Context) ([]*domain.Track, error) {
	return s.tracks.ListPremium(ctx)
}

func (s *LibraryService) UpdateTrack(ctx context.Context, id int64, upd ports.TrackUpdate) (*domain.Track, error) {
	return s.tracks.Update(ctx, id, upd)
}

func (s *LibraryService) DeleteTrack(ctx context.Context, id int64) error {
	return s.tracks.Delete(ctx, id)
}

// --- Playlists ---

func (s *LibraryService) CreatePlaylist(ctx context.Context, input ports.CreatePlaylistInput) (*domain.Playlist, error) {
	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	playlist, err := s.playlists.Create(ctx, &domain.Playlist{
		Name:      input.Name,
		UserID:    input.UserID,
		CreatedAt: time.Now().UTC(),
		CoverArt:  input.CoverArt,
		IsPublic:  isPublic,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create playlist")
		return nil, err
	}

	s.logger.Info().Int64("playlist_id", playlist.ID).Int64("user_id", playlist.UserID).Msg("playlist created")
	return playlist, nil
}

func (s *LibraryService) Playlist(ctx context.Context, id int64) (*domain.Playlist, error) {
	return s.playlists.FindByID(ctx, id)
}

func (s *LibraryService) Playlists(ctx context.Context, userID int64) ([]*domain.Playlist, error) {
	return s.playlists.ListForUser(ctx, userID)
}

func (s *LibraryService) PublicPlaylists(ctx context.Context) ([]*domain.Playlist, error) {
	return s.playlists.ListPublic(ctx)
}

func (s *LibraryService) UpdatePlaylist(ctx context.Context, id int64, upd ports.PlaylistUpdate) (*domain.Playlist, error) {
	return s.playlists.Update(ctx, id, upd)
}

func (s *LibraryService) DeletePlaylist(ctx context.Context, id int64) error {
	if err := s.playlists.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("playlist_id", id).Msg("playlist deleted")
	return nil
}

// --- Playlist tracks ---

func (s *LibraryService) AddTrackToPlaylist(ctx context.Context, playlistID, trackID int64, position int) (*domain.PlaylistTrack, error) {
	if _, err := s.playlists.FindByID(ctx, playlistID); err != nil {
		return nil, err
	}
	return s.playlists.AddTrack(ctx, &domain.PlaylistTrack{
		PlaylistID: playlistID,
		TrackID:    trackID,
		Position:   position,
	})
}

// PlaylistTracks returns the playlist's junction rows joined with their
// tracks, position-ordered. Rows whose track no longer resolves (the track
// was deleted after being added) are dropped from the view.
func (s *LibraryService) PlaylistTracks(ctx context.Context, playlistID int64) ([]*ports.PlaylistEntry, error) {
	rows, err := s.playlists.TracksFor(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.TrackID)
	}
	tracks, err := s.tracks.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.Track, len(tracks))
	for _, t := range tracks {
		byID[t.ID] = t
	}

	entries := make([]*ports.PlaylistEntry, 0, len(rows))
	for _, row := range rows {
		track, ok := byID[row.TrackID]
		if !ok {
			continue
		}
		entries = append(entries, &ports.PlaylistEntry{PlaylistTrack: *row, Track: track})
	}
	return entries, nil
}

func (s *LibraryService) RemoveTrackFromPlaylist(ctx context.Context, playlistID, trackID int64) error {
	return s.playlists.RemoveTrack(ctx, playlistID, trackID)
}

func (s *LibraryService) MoveTrack(ctx context.Context, rowID int64, position int) (*domain.PlaylistTrack, error) {
	return s.playlists.UpdateTrackPosition(ctx, rowID, position)
}

// --- Recently played ---

func (s *LibraryService) RecordPlay(ctx context.Context, userID, trackID int64, playedAt time.Time) (*domain.RecentlyPlayed, error) {
	return s.recent.Upsert(ctx, &domain.RecentlyPlayed{
		UserID:   userID,
		TrackID:  trackID,
		PlayedAt: playedAt,
	})
}

func (s *LibraryService) RecentlyPlayed(ctx context.Context, userID int64, limit int) ([]*ports.RecentEntry, error) {
	rows, err := s.recent.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.TrackID)
	}
	tracks, err := s.tracks.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.Track, len(tracks))
	for _, t := range tracks {
		byID[t.ID] = t
	}

	entries := make([]*ports.RecentEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &ports.RecentEntry{RecentlyPlayed: *row, Track: byID[row.TrackID]})
	}
	return entries, nil
}
