package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/service"
	"github.com/tunedeck/music-system/internal/infrastructure/db/memory"
)

func newPremiumService(t *testing.T) (*service.PremiumService, *memory.UserRepository) {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	subs := memory.NewSubscriptionRepository(store)
	return service.NewPremiumService(users, subs, zerolog.Nop()), users
}

func seedUser(t *testing.T, users *memory.UserRepository, userType string) int64 {
	t.Helper()
	user, err := users.Create(context.Background(), &domain.User{
		Username: "u-" + userType,
		Email:    userType + "@example.com",
		UserType: userType,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	e := echo.New()
	premium, users := newPremiumService(t)
	adminID := seedUser(t, users, domain.TypeAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", adminID)

	called := false
	handler := RequireAdmin(premium)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireAdmin_RejectsNonAdmin(t *testing.T) {
	e := echo.New()
	premium, users := newPremiumService(t)
	userID := seedUser(t, users, domain.TypeFree)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)

	handler := RequireAdmin(premium)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAdmin_RejectsUnauthenticated(t *testing.T) {
	e := echo.New()
	premium, _ := newPremiumService(t)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAdmin(premium)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
