package domain

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserExists            = errors.New("user already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrTrackNotFound         = errors.New("track not found")
	ErrPlaylistNotFound      = errors.New("playlist not found")
	ErrPlaylistTrackNotFound = errors.New("playlist track not found")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrForbidden             = errors.New("access forbidden")
	ErrSessionNotFound       = errors.New("session not found")
)
