package domain

import "time"

// UserType is the account tier of a user.
const (
	TypeFree    = "free"
	TypePremium = "premium"
	TypeAdmin   = "admin"
)

// User models an account in the library.
//
// PremiumExpiry is only meaningful for premium users; a premium user whose
// expiry lies in the past is downgraded to free the next time the premium
// service evaluates them (lazy expiry — see service.PremiumService).
type User struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	UserType       string     `json:"userType"`
	PremiumExpiry  *time.Time `json:"premiumExpiry,omitempty"`
	RegisteredAt   time.Time  `json:"registeredAt"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
}

// IsAdmin reports whether the user holds the admin tier.
func (u *User) IsAdmin() bool {
	return u.UserType == TypeAdmin
}
