package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tunedeck/music-system/internal/api/metrics"
	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
)

// PremiumHandler handles premium status and subscription requests.
type PremiumHandler struct {
	premium ports.PremiumService
}

func NewPremiumHandler(premium ports.PremiumService) *PremiumHandler {
	return &PremiumHandler{premium: premium}
}

// Status resolves the caller's tier. Reading the status is what triggers the
// lazy downgrade of expired premium accounts.
func (h *PremiumHandler) Status(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	isPremium, err := h.premium.IsPremium(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	userType, err := h.premium.UserType(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, premiumStatusResponse{
		IsPremium: isPremium,
		UserType:  userType,
	})
}

// Subscribe opens a premium period. A user may subscribe themself; only
// admins may target another account.
func (h *PremiumHandler) Subscribe(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	target := userID
	if req.UserID != 0 && req.UserID != userID {
		isAdmin, err := h.premium.IsAdmin(c.Request().Context(), userID)
		if err != nil {
			return err
		}
		if !isAdmin {
			return domain.ErrForbidden
		}
		target = req.UserID
	}

	sub, err := h.premium.Subscribe(c.Request().Context(), ports.SubscribeInput{
		UserID:   target,
		Duration: time.Duration(req.DurationDays) * 24 * time.Hour,
		Amount:   req.Amount,
	})
	if err != nil {
		return err
	}

	metrics.SubscriptionsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, sub)
}

// Subscriptions lists the caller's subscription history.
func (h *PremiumHandler) Subscriptions(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return err
	}

	subs, err := h.premium.Subscriptions(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(subs))
}
