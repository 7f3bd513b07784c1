package domain

import "time"

// Subscription statuses.
const (
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// PremiumSubscription is a paid premium period for a user.
type PremiumSubscription struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Live reports whether the subscription is active and not yet past its end date.
func (s *PremiumSubscription) Live(now time.Time) bool {
	return s.Status == SubscriptionActive && s.EndDate.After(now)
}
