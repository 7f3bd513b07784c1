package ports

import (
	"context"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	UserType       string // defaults to free when empty
	ProfilePicture string
}

// AuthService implements account registration and the two login flows:
// cookie sessions for browsers and bearer tokens for API clients.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login authenticates by username or email (username checked first) and
	// returns the user, a fresh session id and a signed bearer token.
	Login(ctx context.Context, identifier, password string) (*domain.User, string, string, error)
	Logout(ctx context.Context, sessionID string) error
}
