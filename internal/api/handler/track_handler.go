package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tunedeck/music-system/internal/api/metrics"
	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
)

// TrackHandler handles HTTP requests for the track library.
type TrackHandler struct {
	library ports.LibraryService
	premium ports.PremiumService
}

func NewTrackHandler(library ports.LibraryService, premium ports.PremiumService) *TrackHandler {
	return &TrackHandler{library: library, premium: premium}
}

// List returns the tracks visible to the scoped user: their own plus
// ownerless ones.
func (h *TrackHandler) List(c echo.Context) error {
	userID, err := scopeUserID(c, h.premium)
	if err != nil {
		return err
	}

	tracks, err := h.library.Tracks(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(tracks))
}

func (h *TrackHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	track, err := h.library.Track(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, track)
}

func (h *TrackHandler) ByArtist(c echo.Context) error {
	return h.byField(c, h.library.TracksByArtist)
}

func (h *TrackHandler) ByAlbum(c echo.Context) error {
	return h.byField(c, h.library.TracksByAlbum)
}

func (h *TrackHandler) ByGenre(c echo.Context) error {
	return h.byField(c, h.library.TracksByGenre)
}

// Premium returns every premium-flagged track regardless of owner.
func (h *TrackHandler) Premium(c echo.Context) error {
	tracks, err := h.library.PremiumTracks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(tracks))
}

func (h *TrackHandler) Create(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req createTrackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	track, err := h.library.CreateTrack(c.Request().Context(), ports.CreateTrackInput{
		Title:     req.Title,
		Artist:    req.Artist,
		Album:     req.Album,
		Duration:  req.Duration,
		FilePath:  req.FilePath,
		Genre:     req.Genre,
		Year:      req.Year,
		AlbumArt:  req.AlbumArt,
		UserID:    userID,
		IsPremium: req.IsPremium,
		Quality:   req.Quality,
	})
	if err != nil {
		return err
	}

	metrics.TracksCreatedTotal.WithLabelValues(track.Quality).Inc()
	return c.JSON(http.StatusCreated, track)
}

func (h *TrackHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateTrackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	track, err := h.library.UpdateTrack(c.Request().Context(), id, ports.TrackUpdate{
		Title:     req.Title,
		Artist:    req.Artist,
		Album:     req.Album,
		Duration:  req.Duration,
		FilePath:  req.FilePath,
		Genre:     req.Genre,
		Year:      req.Year,
		AlbumArt:  req.AlbumArt,
		IsPremium: req.IsPremium,
		Quality:   req.Quality,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, track)
}

func (h *TrackHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.library.DeleteTrack(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TrackHandler) byField(c echo.Context, list func(ctx context.Context, value string, userID int64) ([]*domain.Track, error)) error {
	userID, err := scopeUserID(c, h.premium)
	if err != nil {
		return err
	}

	tracks, err := list(c.Request().Context(), c.Param("value"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(tracks))
}

// emptyIfNil keeps list responses as [] rather than null.
func emptyIfNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
