package ports

import (
	"context"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// SubscriptionUpdate carries a partial subscription update.
type SubscriptionUpdate struct {
	EndDate *string
	Status  *string
}

// SubscriptionRepository defines persistence for premium subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.PremiumSubscription) (*domain.PremiumSubscription, error)
	FindByID(ctx context.Context, id int64) (*domain.PremiumSubscription, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.PremiumSubscription, error)
	// FindActive returns the user's live subscription, if any.
	FindActive(ctx context.Context, userID int64) (*domain.PremiumSubscription, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.PremiumSubscription, error)
	Delete(ctx context.Context, id int64) error
}
