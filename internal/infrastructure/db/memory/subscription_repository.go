package memory

import (
	"context"
	"time"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// SubscriptionRepository is the map-backed ports.SubscriptionRepository.
type SubscriptionRepository struct {
	store *Store
}

func NewSubscriptionRepository(store *Store) *SubscriptionRepository {
	return &SubscriptionRepository{store: store}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.PremiumSubscription) (*domain.PremiumSubscription, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *sub
	clone.ID = s.nextSubscriptionID
	s.nextSubscriptionID++
	s.subscriptions[clone.ID] = &clone

	out := clone
	return &out, nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id int64) (*domain.PremiumSubscription, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscriptions[id]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	clone := *sub
	return &clone, nil
}

func (r *SubscriptionRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.PremiumSubscription, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.PremiumSubscription, 0)
	for _, sub := range s.subscriptions {
		if sub.UserID == userID {
			clone := *sub
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *SubscriptionRepository) FindActive(ctx context.Context, userID int64) (*domain.PremiumSubscription, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, sub := range s.subscriptions {
		if sub.UserID == userID && sub.Live(now) {
			clone := *sub
			return &clone, nil
		}
	}
	return nil, domain.ErrSubscriptionNotFound
}

func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id int64, status string) (*domain.PremiumSubscription, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscriptions[id]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	sub.Status = status

	clone := *sub
	return &clone, nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscriptions[id]; !ok {
		return domain.ErrSubscriptionNotFound
	}
	delete(s.subscriptions, id)
	return nil
}
