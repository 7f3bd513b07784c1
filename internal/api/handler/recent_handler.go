package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tunedeck/music-system/internal/api/metrics"
	"github.com/tunedeck/music-system/internal/core/ports"
)

// RecentHandler handles HTTP requests for listening history.
type RecentHandler struct {
	library ports.LibraryService
	premium ports.PremiumService
}

func NewRecentHandler(library ports.LibraryService, premium ports.PremiumService) *RecentHandler {
	return &RecentHandler{library: library, premium: premium}
}

// List returns the scoped user's history, most recent first. The limit query
// parameter caps the result; the store default applies when absent.
func (h *RecentHandler) List(c echo.Context) error {
	userID, err := scopeUserID(c, h.premium)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}

	entries, err := h.library.RecentlyPlayed(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(entries))
}

// Record notes a play for the authenticated user. Replaying a track moves it
// to the top of the history instead of duplicating it.
func (h *RecentHandler) Record(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req recordPlayRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	entry, err := h.library.RecordPlay(c.Request().Context(), userID, req.TrackID, time.Now().UTC())
	if err != nil {
		return err
	}

	metrics.PlaysRecordedTotal.Inc()
	return c.JSON(http.StatusCreated, entry)
}
