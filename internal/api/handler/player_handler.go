package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tunedeck/music-system/internal/api/metrics"
	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
	"github.com/tunedeck/music-system/internal/playback"
)

// PlayerHandler drives the server-resident playback controller. Every
// transport command responds with the resulting state snapshot so clients
// need no follow-up read.
type PlayerHandler struct {
	manager *playback.Manager
	library ports.LibraryService
}

func NewPlayerHandler(manager *playback.Manager, library ports.LibraryService) *PlayerHandler {
	return &PlayerHandler{manager: manager, library: library}
}

// State returns the user's transport snapshot.
func (h *PlayerHandler) State(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.manager.Controller(userID).Snapshot())
}

// Play targets one track: appended to the queue if absent, cursor moved if
// already queued.
func (h *PlayerHandler) Play(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req playTrackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	track, err := h.library.Track(c.Request().Context(), req.TrackID)
	if err != nil {
		return err
	}

	ctrl := h.manager.Controller(userID)
	ctrl.PlayTrack(track)
	metrics.PlaybackCommandsTotal.WithLabelValues("play").Inc()
	return c.JSON(http.StatusOK, ctrl.Snapshot())
}

// PlayPlaylist replaces the queue with the playlist's tracks in position
// order. Rows whose track has been deleted are skipped.
func (h *PlayerHandler) PlayPlaylist(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req playPlaylistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	entries, err := h.library.PlaylistTracks(c.Request().Context(), req.PlaylistID)
	if err != nil {
		return err
	}

	tracks := make([]*domain.Track, 0, len(entries))
	for _, entry := range entries {
		tracks = append(tracks, entry.Track)
	}

	ctrl := h.manager.Controller(userID)
	ctrl.PlayPlaylist(tracks)
	metrics.PlaybackCommandsTotal.WithLabelValues("playlist").Inc()
	return c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (h *PlayerHandler) Toggle(c echo.Context) error {
	return h.command(c, "toggle", func(ctrl *playback.Controller) { ctrl.TogglePlayPause() })
}

func (h *PlayerHandler) Next(c echo.Context) error {
	return h.command(c, "next", func(ctrl *playback.Controller) { ctrl.SkipToNext() })
}

func (h *PlayerHandler) Previous(c echo.Context) error {
	return h.command(c, "previous", func(ctrl *playback.Controller) { ctrl.SkipToPrevious() })
}

func (h *PlayerHandler) Seek(c echo.Context) error {
	var req seekRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	return h.command(c, "seek", func(ctrl *playback.Controller) { ctrl.Seek(req.Seconds) })
}

// Volume applies the requested level. Out-of-range values are rejected by the
// controller and leave the state untouched; the snapshot shows the outcome.
func (h *PlayerHandler) Volume(c echo.Context) error {
	var req volumeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	return h.command(c, "volume", func(ctrl *playback.Controller) { ctrl.SetVolume(req.Volume) })
}

func (h *PlayerHandler) Mute(c echo.Context) error {
	return h.command(c, "mute", func(ctrl *playback.Controller) { ctrl.ToggleMute() })
}

// Enqueue appends a track without touching the cursor.
func (h *PlayerHandler) Enqueue(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req playTrackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	track, err := h.library.Track(c.Request().Context(), req.TrackID)
	if err != nil {
		return err
	}

	ctrl := h.manager.Controller(userID)
	ctrl.AddToQueue(track)
	metrics.PlaybackCommandsTotal.WithLabelValues("queue").Inc()
	return c.JSON(http.StatusOK, ctrl.Snapshot())
}

// ClearQueue empties the queue; the current track keeps playing.
func (h *PlayerHandler) ClearQueue(c echo.Context) error {
	return h.command(c, "clear_queue", func(ctrl *playback.Controller) { ctrl.ClearQueue() })
}

func (h *PlayerHandler) command(c echo.Context, name string, fn func(*playback.Controller)) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	ctrl := h.manager.Controller(userID)
	fn(ctrl)
	metrics.PlaybackCommandsTotal.WithLabelValues(name).Inc()
	return c.JSON(http.StatusOK, ctrl.Snapshot())
}
