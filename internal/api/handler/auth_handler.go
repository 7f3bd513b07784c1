package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tunedeck/music-system/internal/api/metrics"
	"github.com/tunedeck/music-system/internal/api/middleware"
	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	users        ports.UserRepository
	sessionTTL   time.Duration
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, users ports.UserRepository, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		users:        users,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
	}
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new account. The caller logs in separately; no session
// is opened here.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		UserType:       req.UserType,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates by username or email. The response carries a bearer
// token for API clients and sets the session cookie for browsers.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, sessionID, token, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(h.sessionCookie(sessionID, h.sessionTTL))
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout revokes the browser session and clears its cookie. Bearer-only
// clients have nothing to revoke; their tokens expire on their own.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sessionID, ok := c.Get("session_id").(string); ok && sessionID != "" {
		if err := h.authService.Logout(c.Request().Context(), sessionID); err != nil {
			return err
		}
	}
	c.SetCookie(h.sessionCookie("", -time.Second))
	return c.NoContent(http.StatusNoContent)
}

// CurrentUser returns the authenticated account.
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account. The route is admin-gated by middleware.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
