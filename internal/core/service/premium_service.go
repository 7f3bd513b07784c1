package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
)

// PremiumService resolves premium status and manages subscriptions.
//
// Status reads apply lazy expiry: a premium user whose expiry has passed is
// downgraded to free and their expiry cleared as part of the read. Callers
// must tolerate the user record mutating during what looks like a query.
type PremiumService struct {
	users         ports.UserRepository
	subscriptions ports.SubscriptionRepository
	logger        zerolog.Logger
}

func NewPremiumService(users ports.UserRepository, subscriptions ports.SubscriptionRepository, logger zerolog.Logger) *PremiumService {
	return &PremiumService{
		users:         users,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// IsPremium reports whether the user currently has premium access. Admins are
// always premium. May downgrade the stored user as a side effect.
func (s *PremiumService) IsPremium(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	if user.UserType == domain.TypeAdmin {
		return true, nil
	}
	if user.UserType != domain.TypePremium {
		return false, nil
	}

	if user.PremiumExpiry != nil {
		if user.PremiumExpiry.Before(time.Now()) {
			if err := s.downgrade(ctx, user.ID); err != nil {
				return false, err
			}
			return false, nil
		}
		return true, nil
	}

	// Premium tier without an expiry date grants nothing.
	return false, nil
}

// UserType returns the user's effective tier, applying the same lazy expiry
// as IsPremium. Unknown users resolve to "unknown".
func (s *PremiumService) UserType(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "unknown", nil
		}
		return "", err
	}

	if user.UserType == domain.TypePremium && user.PremiumExpiry != nil && user.PremiumExpiry.Before(time.Now()) {
		if err := s.downgrade(ctx, user.ID); err != nil {
			return "", err
		}
		return domain.TypeFree, nil
	}

	return user.UserType, nil
}

func (s *PremiumService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin(), nil
}

// Subscribe opens a subscription period, promotes the user to premium and
// sets their expiry to the period's end date.
func (s *PremiumService) Subscribe(ctx context.Context, input ports.SubscribeInput) (*domain.PremiumSubscription, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	end := now.Add(input.Duration)

	sub, err := s.subscriptions.Create(ctx, &domain.PremiumSubscription{
		UserID:    user.ID,
		StartDate: now,
		EndDate:   end,
		Amount:    input.Amount,
		Status:    domain.SubscriptionActive,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	premium := domain.TypePremium
	expiry := &end
	if user.UserType == domain.TypeAdmin {
		// Admins keep their tier; the subscription is still recorded.
		premium = domain.TypeAdmin
	}
	if _, err := s.users.Update(ctx, user.ID, ports.UserUpdate{
		UserType:      &premium,
		PremiumExpiry: &expiry,
	}); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Time("expires", end).Msg("premium subscription opened")
	return sub, nil
}

func (s *PremiumService) Subscriptions(ctx context.Context, userID int64) ([]*domain.PremiumSubscription, error) {
	return s.subscriptions.ListForUser(ctx, userID)
}

// downgrade moves an expired premium user back to free and clears the expiry.
func (s *PremiumService) downgrade(ctx context.Context, userID int64) error {
	free := domain.TypeFree
	var cleared *time.Time
	_, err := s.users.Update(ctx, userID, ports.UserUpdate{
		UserType:      &free,
		PremiumExpiry: &cleared,
	})
	if err == nil {
		s.logger.Info().Int64("user_id", userID).Msg("premium expired, user downgraded to free")
	}
	return err
}
