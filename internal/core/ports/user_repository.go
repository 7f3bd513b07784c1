package ports

import (
	"context"
	"time"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// UserUpdate carries a partial user update; nil fields are left untouched.
// PremiumExpiry uses a double pointer so callers can distinguish "leave as is"
// (nil) from "clear" (pointer to nil).
type UserUpdate struct {
	Username       *string
	Email          *string
	PasswordHash   *string
	UserType       *string
	PremiumExpiry  **time.Time
	LastLoginAt    *time.Time
	ProfilePicture *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByUsername and FindByEmail match exactly and case-sensitively,
	// returning the first match.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
