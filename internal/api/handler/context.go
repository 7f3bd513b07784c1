package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tunedeck/music-system/internal/core/ports"
)

// authedUserID extracts the user id injected by the Auth middleware. Its
// absence means the middleware did not run on this route — reject with 401
// before any service call.
func authedUserID(c echo.Context) (int64, error) {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// scopeUserID resolves which user a list-scoped read is about. The session
// user is the default; an explicit userId query parameter is honored only for
// admins (400 when malformed, 403 when a non-admin asks about someone else).
func scopeUserID(c echo.Context, premium ports.PremiumService) (int64, error) {
	userID, err := authedUserID(c)
	if err != nil {
		return 0, err
	}

	raw := c.QueryParam("userId")
	if raw == "" {
		return userID, nil
	}

	requested, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}
	if requested == userID {
		return userID, nil
	}

	isAdmin, err := premium.IsAdmin(c.Request().Context(), userID)
	if err != nil {
		return 0, err
	}
	if !isAdmin {
		return 0, echo.NewHTTPError(http.StatusForbidden, "cannot query another user's library")
	}
	return requested, nil
}

// pathID parses a numeric path parameter, rejecting malformed ids with 400.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
