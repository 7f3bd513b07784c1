package playback

import "github.com/tunedeck/music-system/internal/core/domain"

// EventType represents a playback event type.
type EventType int

const (
	EventTrackStarted EventType = iota // A track began playing
	EventTrackEnded                    // The device reached the end of a track
	EventStateChanged                  // Play/pause or volume state changed
	EventQueueCleared                  // The queue was reset
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackStarted:
		return "track_started"
	case EventTrackEnded:
		return "track_ended"
	case EventStateChanged:
		return "state_changed"
	case EventQueueCleared:
		return "queue_cleared"
	default:
		return "unknown"
	}
}

// Event is emitted on the controller's event channel.
type Event struct {
	Type      EventType
	Track     *domain.Track // current track, nil for some events
	IsPlaying bool
}
