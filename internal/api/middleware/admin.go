package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tunedeck/music-system/internal/core/ports"
)

// RequireAdmin gates a route to admin accounts. It must run after Auth so the
// user id is already in context; the tier is resolved through the premium
// service rather than trusted from token claims.
func RequireAdmin(premium ports.PremiumService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get("user_id").(int64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			isAdmin, err := premium.IsAdmin(c.Request().Context(), userID)
			if err != nil {
				return err
			}
			if !isAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
