package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
	"github.com/tunedeck/music-system/internal/infrastructure/db/memory"
)

func newLibraryFixture() *LibraryService {
	store := memory.NewStore()
	return NewLibraryService(
		memory.NewTrackRepository(store),
		memory.NewPlaylistRepository(store),
		memory.NewRecentRepository(store),
		zerolog.Nop(),
	)
}

func TestLibraryService_CreateTrackDefaults(t *testing.T) {
	svc := newLibraryFixture()

	track, err := svc.CreateTrack(context.Background(), ports.CreateTrackInput{
		Title:    "Midnight",
		FilePath: "/music/midnight.mp3",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if track.Quality != domain.QualityStandard {
		t.Fatalf("expected standard quality, got %q", track.Quality)
	}
	if track.AddedAt.IsZero() {
		t.Fatal("expected AddedAt to be stamped")
	}
}

func TestLibraryService_PlaylistScenario(t *testing.T) {
	// Create user U's playlist "Mix", add an ownerless track at position 0,
	// read the joined view, then delete the playlist and read again.
	svc := newLibraryFixture()
	ctx := context.Background()

	track, _ := svc.CreateTrack(ctx, ports.CreateTrackInput{Title: "T1", FilePath: "/t1.mp3"})
	mix, err := svc.CreatePlaylist(ctx, ports.CreatePlaylistInput{Name: "Mix", UserID: 1})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	if _, err := svc.AddTrackToPlaylist(ctx, mix.ID, track.ID, 0); err != nil {
		t.Fatalf("add track: %v", err)
	}

	entries, err := svc.PlaylistTracks(ctx, mix.ID)
	if err != nil {
		t.Fatalf("playlist tracks: %v", err)
	}
	if len(entries) != 1 || entries[0].Track.ID != track.ID || entries[0].Position != 0 {
		t.Fatalf("expected one entry for T1 at position 0, got %+v", entries)
	}

	if err := svc.DeletePlaylist(ctx, mix.ID); err != nil {
		t.Fatalf("delete playlist: %v", err)
	}
	entries, _ = svc.PlaylistTracks(ctx, mix.ID)
	if len(entries) != 0 {
		t.Fatalf("expected empty view after cascade delete, got %d", len(entries))
	}
}

func TestLibraryService_AddTrackToMissingPlaylist(t *testing.T) {
	svc := newLibraryFixture()

	_, err := svc.AddTrackToPlaylist(context.Background(), 42, 1, 0)
	if err != domain.ErrPlaylistNotFound {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestLibraryService_DanglingJunctionRowsFilteredFromView(t *testing.T) {
	svc := newLibraryFixture()
	ctx := context.Background()

	keep, _ := svc.CreateTrack(ctx, ports.CreateTrackInput{Title: "Keep", FilePath: "/keep.mp3"})
	gone, _ := svc.CreateTrack(ctx, ports.CreateTrackInput{Title: "Gone", FilePath: "/gone.mp3"})
	mix, _ := svc.CreatePlaylist(ctx, ports.CreatePlaylistInput{Name: "Mix", UserID: 1})
	svc.AddTrackToPlaylist(ctx, mix.ID, keep.ID, 0)
	svc.AddTrackToPlaylist(ctx, mix.ID, gone.ID, 1)

	// Track delete does not cascade; the junction row goes dangling.
	if err := svc.DeleteTrack(ctx, gone.ID); err != nil {
		t.Fatalf("delete track: %v", err)
	}

	entries, err := svc.PlaylistTracks(ctx, mix.ID)
	if err != nil {
		t.Fatalf("playlist tracks: %v", err)
	}
	if len(entries) != 1 || entries[0].Track.ID != keep.ID {
		t.Fatalf("expected dangling row filtered out, got %d entries", len(entries))
	}
}

func TestLibraryService_RecentlyPlayedJoinsTracks(t *testing.T) {
	svc := newLibraryFixture()
	ctx := context.Background()

	t1, _ := svc.CreateTrack(ctx, ports.CreateTrackInput{Title: "T1", FilePath: "/t1.mp3"})
	t2, _ := svc.CreateTrack(ctx, ports.CreateTrackInput{Title: "T2", FilePath: "/t2.mp3"})

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.RecordPlay(ctx, 1, t1.ID, base)
	svc.RecordPlay(ctx, 1, t2.ID, base.Add(time.Minute))

	entries, err := svc.RecentlyPlayed(ctx, 1, 0)
	if err != nil {
		t.Fatalf("recently played: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Track == nil || entries[0].Track.ID != t2.ID {
		t.Fatalf("expected most recent track T2 first, got %+v", entries[0])
	}

	// Replay updates the timestamp instead of duplicating.
	svc.RecordPlay(ctx, 1, t1.ID, base.Add(2*time.Minute))
	entries, _ = svc.RecentlyPlayed(ctx, 1, 0)
	if len(entries) != 2 || entries[0].Track.ID != t1.ID {
		t.Fatalf("expected replay to move T1 to the front without duplicating, got %d entries", len(entries))
	}
}
