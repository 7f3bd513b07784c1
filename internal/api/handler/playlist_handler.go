package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tunedeck/music-system/internal/api/metrics"
	"github.com/tunedeck/music-system/internal/core/ports"
)

// PlaylistHandler handles HTTP requests for playlists and their tracks.
type PlaylistHandler struct {
	library ports.LibraryService
	premium ports.PremiumService
}

func NewPlaylistHandler(library ports.LibraryService, premium ports.PremiumService) *PlaylistHandler {
	return &PlaylistHandler{library: library, premium: premium}
}

func (h *PlaylistHandler) List(c echo.Context) error {
	userID, err := scopeUserID(c, h.premium)
	if err != nil {
		return err
	}

	playlists, err := h.library.Playlists(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(playlists))
}

func (h *PlaylistHandler) Public(c echo.Context) error {
	playlists, err := h.library.PublicPlaylists(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(playlists))
}

func (h *PlaylistHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	playlist, err := h.library.Playlist(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, playlist)
}

func (h *PlaylistHandler) Create(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req createPlaylistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	playlist, err := h.library.CreatePlaylist(c.Request().Context(), ports.CreatePlaylistInput{
		Name:     req.Name,
		UserID:   userID,
		CoverArt: req.CoverArt,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return err
	}

	metrics.PlaylistsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, playlist)
}

func (h *PlaylistHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updatePlaylistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	playlist, err := h.library.UpdatePlaylist(c.Request().Context(), id, ports.PlaylistUpdate{
		Name:     req.Name,
		CoverArt: req.CoverArt,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, playlist)
}

// Delete removes the playlist and all of its junction rows.
func (h *PlaylistHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.library.DeletePlaylist(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Tracks returns the playlist's rows joined with their tracks, sorted by
// position. Rows whose track has been deleted are omitted.
func (h *PlaylistHandler) Tracks(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.library.PlaylistTracks(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(entries))
}

func (h *PlaylistHandler) AddTrack(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req addPlaylistTrackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	row, err := h.library.AddTrackToPlaylist(c.Request().Context(), id, req.TrackID, req.Position)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, row)
}

func (h *PlaylistHandler) RemoveTrack(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	trackID, err := pathID(c, "trackId")
	if err != nil {
		return err
	}

	if err := h.library.RemoveTrackFromPlaylist(c.Request().Context(), id, trackID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MoveTrack repositions a junction row by its own id.
func (h *PlaylistHandler) MoveTrack(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req movePlaylistTrackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	row, err := h.library.MoveTrack(c.Request().Context(), id, req.Position)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, row)
}
