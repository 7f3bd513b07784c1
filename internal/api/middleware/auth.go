package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/tunedeck/music-system/internal/core/ports"
)

// SessionCookie is the name of the HttpOnly cookie carrying the session id.
const SessionCookie = "session_id"

// Auth authenticates a request and injects the user id into context.
//
// Two credentials are accepted: a session cookie (browser flow, resolved
// against the session store) or an Authorization bearer JWT (API flow).
// The cookie is tried first; a request carrying neither, or only invalid
// credentials, is rejected with 401.
func Auth(sessions ports.SessionStore, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				userID, err := sessions.Lookup(c.Request().Context(), cookie.Value)
				if err == nil {
					c.Set("user_id", userID)
					c.Set("session_id", cookie.Value)
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// JSON numbers decode as float64 in MapClaims.
			rawID, ok := claims["user_id"].(float64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
			}

			c.Set("user_id", int64(rawID))
			c.Set("username", claims["username"])
			c.Set("user_type", claims["user_type"])

			return next(c)
		}
	}
}
