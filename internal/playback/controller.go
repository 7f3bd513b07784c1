package playback

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tunedeck/music-system/internal/core/domain"
)

const (
	defaultVolume   = 0.7
	eventBufferSize = 16
)

// Controller owns one Device and a play queue with a cursor. It mirrors the
// device's transport state and converts play failures into a stopped state
// rather than surfacing them: a rejected play is logged, never returned.
type Controller struct {
	mu sync.Mutex

	device Device

	queue        []*domain.Track
	currentIndex int // -1 when the queue is empty
	currentTrack *domain.Track

	isPlaying      bool
	currentTime    float64
	duration       float64
	volume         float64
	isMuted        bool
	previousVolume float64

	// loadToken identifies the most recent device load. A play rejection
	// carrying an older token belongs to a superseded track and is ignored.
	loadToken int

	eventCh chan Event
	closed  bool
	log     zerolog.Logger
}

// NewController wires a controller to its device. The device's lifetime is
// owned by the controller and ends with Close.
func NewController(device Device, log zerolog.Logger) *Controller {
	c := &Controller{
		device:         device,
		currentIndex:   -1,
		volume:         defaultVolume,
		previousVolume: defaultVolume,
		eventCh:        make(chan Event, eventBufferSize),
		log:            log,
	}
	device.SetListener(&deviceEvents{c: c})
	device.SetVolume(defaultVolume)
	return c
}

// Events returns the controller's event channel. The channel is closed by
// Close; sends never block (events are dropped when the buffer is full).
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// PlayTrack makes track the current one and starts playback. If the track is
// not in the queue it is appended and the cursor points at the new tail;
// otherwise the cursor moves to its existing position.
func (c *Controller) PlayTrack(track *domain.Track) {
	if track == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOfLocked(track.ID)
	if idx == -1 {
		c.queue = append(c.queue, track)
		idx = len(c.queue) - 1
	}
	c.currentIndex = idx
	c.isPlaying = true
	c.loadAndPlayLocked(c.queue[idx])
}

// PlayPlaylist replaces the queue wholesale with the given ordered list and
// plays the first track. An empty list is a no-op.
func (c *Controller) PlayPlaylist(tracks []*domain.Track) {
	if len(tracks) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue = make([]*domain.Track, len(tracks))
	copy(c.queue, tracks)
	c.currentIndex = 0
	c.isPlaying = true
	c.loadAndPlayLocked(c.queue[0])
}

// TogglePlayPause pauses when playing and resumes when paused.
func (c *Controller) TogglePlayPause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isPlaying {
		c.pauseLocked()
	} else {
		c.playLocked()
	}
}

// Play resumes the current track. No-op without a current track or when
// already playing.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playLocked()
}

// Pause pauses playback. No-op when already paused.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

// SkipToNext advances the cursor, wrapping to the head at the queue end.
// No-op on an empty queue.
func (c *Controller) SkipToNext() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipLocked(1)
}

// SkipToPrevious moves the cursor back, wrapping to the tail at position 0.
// No-op on an empty queue.
func (c *Controller) SkipToPrevious() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipLocked(-1)
}

// Seek sets the device position directly. Values are passed through without
// bounds validation; the device clamps.
func (c *Controller) Seek(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.device.Seek(seconds)
}

// SetVolume accepts only 0 <= v <= 1; anything else is silently ignored.
// A nonzero volume while muted clears the mute.
func (c *Controller) SetVolume(v float64) {
	if v < 0 || v > 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.volume = v
	if c.isMuted && v > 0 {
		c.isMuted = false
	}
	c.applyVolumeLocked()
	c.sendEventLocked(Event{Type: EventStateChanged, Track: c.currentTrack, IsPlaying: c.isPlaying})
}

// ToggleMute flips the mute overlay. Muting remembers the current volume;
// unmuting restores it exactly.
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isMuted {
		c.isMuted = false
		c.volume = c.previousVolume
	} else {
		c.previousVolume = c.volume
		c.isMuted = true
	}
	c.applyVolumeLocked()
	c.sendEventLocked(Event{Type: EventStateChanged, Track: c.currentTrack, IsPlaying: c.isPlaying})
}

// AddToQueue appends a track without touching the cursor. Duplicates are
// allowed.
func (c *Controller) AddToQueue(track *domain.Track) {
	if track == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, track)
}

// ClearQueue drops the queue and resets the cursor. The current track, if
// any, keeps playing.
func (c *Controller) ClearQueue() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue = nil
	c.currentIndex = -1
	c.sendEventLocked(Event{Type: EventQueueCleared, IsPlaying: c.isPlaying})
}

// Snapshot returns a copy of the transport state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue := make([]*domain.Track, len(c.queue))
	copy(queue, c.queue)
	return Snapshot{
		CurrentTrack: c.currentTrack,
		Queue:        queue,
		CurrentIndex: c.currentIndex,
		IsPlaying:    c.isPlaying,
		CurrentTime:  c.currentTime,
		Duration:     c.duration,
		Volume:       c.volume,
		IsMuted:      c.isMuted,
	}
}

// Close tears down the device and closes the event channel. The controller
// must not be used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.device.Close()
	close(c.eventCh)
}

// --- internals, all called with c.mu held ---

func (c *Controller) indexOfLocked(trackID int64) int {
	for i, t := range c.queue {
		if t.ID == trackID {
			return i
		}
	}
	return -1
}

func (c *Controller) playLocked() {
	if c.currentTrack == nil || c.isPlaying {
		return
	}
	if err := c.device.Play(c.loadToken); err != nil {
		c.log.Error().Err(err).Msg("playback error")
		return
	}
	c.isPlaying = true
	c.sendEventLocked(Event{Type: EventStateChanged, Track: c.currentTrack, IsPlaying: true})
}

func (c *Controller) pauseLocked() {
	if !c.isPlaying {
		return
	}
	c.device.Pause()
	c.isPlaying = false
	c.sendEventLocked(Event{Type: EventStateChanged, Track: c.currentTrack, IsPlaying: false})
}

func (c *Controller) skipLocked(delta int) {
	n := len(c.queue)
	if n == 0 {
		return
	}

	idx := c.currentIndex + delta
	if idx >= n {
		idx = 0
	}
	if idx < 0 {
		idx = n - 1
	}
	c.currentIndex = idx

	if c.isPlaying {
		c.loadAndPlayLocked(c.queue[idx])
		return
	}
	c.loadLocked(c.queue[idx])
}

// loadLocked points the device at a track without starting it.
func (c *Controller) loadLocked(track *domain.Track) {
	c.currentTrack = track
	c.currentTime = 0
	c.duration = float64(track.Duration)
	c.loadToken = c.device.Load(track.FilePath, track.Duration)
}

// loadAndPlayLocked retargets the device and starts playback. A rejection is
// converted into a stopped state unless it belongs to a superseded load.
func (c *Controller) loadAndPlayLocked(track *domain.Track) {
	c.loadLocked(track)
	token := c.loadToken

	if err := c.device.Play(token); err != nil {
		if token == c.loadToken {
			c.log.Error().Err(err).Str("title", track.Title).Msg("playback error")
			c.isPlaying = false
		}
		return
	}
	c.sendEventLocked(Event{Type: EventTrackStarted, Track: track, IsPlaying: true})
}

func (c *Controller) applyVolumeLocked() {
	if c.isMuted {
		c.device.SetVolume(0)
		return
	}
	c.device.SetVolume(c.volume)
}

func (c *Controller) sendEventLocked(ev Event) {
	if c.closed {
		return
	}
	select {
	case c.eventCh <- ev:
	default:
		// Slow consumer: drop rather than block a transport mutation.
	}
}

// deviceEvents adapts device notifications onto the controller. Handlers run
// on the device's goroutines but take the controller mutex, so they never
// race user intents.
type deviceEvents struct {
	c *Controller
}

func (d *deviceEvents) TimeUpdated(seconds float64) {
	c := d.c
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = seconds
}

func (d *deviceEvents) DurationKnown(seconds float64) {
	c := d.c
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duration = seconds
}

// TrackEnded is the sole trigger for auto-advance. The wrap-around skip
// semantics apply, so a one-track queue loops indefinitely and a queue left
// at its end starts over instead of stopping.
func (d *deviceEvents) TrackEnded() {
	c := d.c
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sendEventLocked(Event{Type: EventTrackEnded, Track: c.currentTrack, IsPlaying: c.isPlaying})
	if len(c.queue) == 0 {
		c.isPlaying = false
		return
	}
	c.skipLocked(1)
}

func (d *deviceEvents) PlaybackStarted() {
	c := d.c
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isPlaying = true
}

func (d *deviceEvents) PlaybackPaused() {
	c := d.c
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isPlaying = false
}
