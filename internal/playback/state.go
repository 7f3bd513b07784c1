// Package playback drives exactly one audio rendering device and a linear
// play queue, exposing transport controls. All state lives behind the
// controller's mutex; device notifications and user intents mutate it through
// the same guarded paths, so no two mutations race.
package playback

import "github.com/tunedeck/music-system/internal/core/domain"

// Snapshot is a point-in-time copy of the controller's transport state.
type Snapshot struct {
	CurrentTrack *domain.Track   `json:"currentTrack"`
	Queue        []*domain.Track `json:"queue"`
	CurrentIndex int             `json:"currentIndex"`
	IsPlaying    bool            `json:"isPlaying"`
	CurrentTime  float64         `json:"currentTime"`
	Duration     float64         `json:"duration"`
	Volume       float64         `json:"volume"`
	IsMuted      bool            `json:"isMuted"`
}
