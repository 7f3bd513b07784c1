package domain

import "time"

// Track quality tiers.
const (
	QualityStandard = "standard"
	QualityHigh     = "high"
	QualityUltra    = "ultra"
)

// Track is a single playable item in the library.
//
// UserID is the owning user; zero means the track is ownerless and visible in
// every user's library view. Optional metadata fields are empty when unknown.
type Track struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist,omitempty"`
	Album     string    `json:"album,omitempty"`
	Duration  int       `json:"duration,omitempty"` // seconds
	FilePath  string    `json:"filePath"`
	Genre     string    `json:"genre,omitempty"`
	Year      string    `json:"year,omitempty"`
	AlbumArt  string    `json:"albumArt,omitempty"`
	UserID    int64     `json:"userId,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
	IsPremium bool      `json:"isPremium"`
	Quality   string    `json:"quality"`
}

// VisibleTo reports whether the track appears in userID's library:
// owned by them, or ownerless.
func (t *Track) VisibleTo(userID int64) bool {
	return t.UserID == 0 || t.UserID == userID
}
