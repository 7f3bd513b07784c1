package ports

import (
	"context"
	"time"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// SubscribeInput carries the fields for opening a premium period.
type SubscribeInput struct {
	UserID   int64
	Duration time.Duration
	Amount   string
}

// PremiumService resolves premium status and manages subscriptions.
//
// IsPremium and UserType may mutate the user record as a side effect of
// evaluation: a premium user whose expiry has passed is downgraded to free
// and their expiry cleared during the read (lazy expiry).
type PremiumService interface {
	IsPremium(ctx context.Context, userID int64) (bool, error)
	UserType(ctx context.Context, userID int64) (string, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	// Subscribe opens a subscription, promotes the user to premium and sets
	// their expiry to the subscription end date.
	Subscribe(ctx context.Context, input SubscribeInput) (*domain.PremiumSubscription, error)
	Subscriptions(ctx context.Context, userID int64) ([]*domain.PremiumSubscription, error)
}
