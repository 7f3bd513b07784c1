package domain

import "time"

// RecentlyPlayed records the last time a user played a track. At most one
// live row exists per (user, track) pair; replaying overwrites PlayedAt.
type RecentlyPlayed struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"userId"`
	TrackID  int64     `json:"trackId"`
	PlayedAt time.Time `json:"playedAt"`
}
