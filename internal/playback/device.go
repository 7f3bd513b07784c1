package playback

import (
	"errors"
	"sync"
	"time"
)

// ErrNoSource is returned by a device asked to play with nothing loaded.
var ErrNoSource = errors.New("no source loaded")

// DeviceListener receives asynchronous device notifications. Implementations
// must be safe to call from the device's own goroutines.
type DeviceListener interface {
	TimeUpdated(seconds float64)
	DurationKnown(seconds float64)
	TrackEnded()
	PlaybackStarted()
	PlaybackPaused()
}

// Device abstracts an audio renderer. Load returns a token identifying that
// load; Play reports failure for the given token so a rejection arriving
// after a newer Load can be told apart from a current one (last-writer-wins,
// stale rejections are ignored by the controller).
type Device interface {
	SetListener(l DeviceListener)
	Load(source string, durationSec int) int
	Play(token int) error
	Pause()
	Seek(seconds float64)
	SetVolume(v float64)
	Close()
}

// ClockDevice simulates a renderer with wall-clock timers: once playing, it
// advances position every tick and reports end-of-track when the loaded
// duration elapses. A zero duration never ends on its own.
type ClockDevice struct {
	mu       sync.Mutex
	listener DeviceListener

	token    int
	source   string
	duration float64
	position float64
	playing  bool
	volume   float64

	tick   time.Duration
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewClockDevice returns a stopped device advancing one second of playback
// position per tick interval.
func NewClockDevice(tick time.Duration) *ClockDevice {
	if tick <= 0 {
		tick = time.Second
	}
	return &ClockDevice{tick: tick, volume: 1}
}

func (d *ClockDevice) SetListener(l DeviceListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listener = l
}

func (d *ClockDevice) Load(source string, durationSec int) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimerLocked()
	d.playing = false
	d.token++
	d.source = source
	d.duration = float64(durationSec)
	d.position = 0

	if l := d.listener; l != nil {
		dur := d.duration
		go l.DurationKnown(dur)
	}
	return d.token
}

func (d *ClockDevice) Play(token int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || token != d.token {
		return ErrNoSource
	}
	if d.source == "" {
		return ErrNoSource
	}
	if d.playing {
		return nil
	}

	d.playing = true
	d.startTimerLocked()
	if l := d.listener; l != nil {
		go l.PlaybackStarted()
	}
	return nil
}

func (d *ClockDevice) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.playing {
		return
	}
	d.playing = false
	d.stopTimerLocked()
	if l := d.listener; l != nil {
		go l.PlaybackPaused()
	}
}

// Seek clamps to [0, duration] when the duration is known; the controller
// passes values through unvalidated by contract.
func (d *ClockDevice) Seek(seconds float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seconds < 0 {
		seconds = 0
	}
	if d.duration > 0 && seconds > d.duration {
		seconds = d.duration
	}
	d.position = seconds
	if l := d.listener; l != nil {
		pos := d.position
		go l.TimeUpdated(pos)
	}
}

func (d *ClockDevice) SetVolume(v float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	d.volume = v
}

func (d *ClockDevice) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	d.playing = false
	d.stopTimerLocked()
}

func (d *ClockDevice) startTimerLocked() {
	d.ticker = time.NewTicker(d.tick)
	d.stopCh = make(chan struct{})
	go d.run(d.ticker, d.stopCh, d.token)
}

func (d *ClockDevice) stopTimerLocked() {
	if d.ticker != nil {
		d.ticker.Stop()
		close(d.stopCh)
		d.ticker = nil
		d.stopCh = nil
	}
}

func (d *ClockDevice) run(ticker *time.Ticker, stop chan struct{}, token int) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.mu.Lock()
			if d.closed || token != d.token || !d.playing {
				d.mu.Unlock()
				return
			}
			d.position++
			pos := d.position
			ended := d.duration > 0 && d.position >= d.duration
			if ended {
				d.playing = false
				d.stopTimerLocked()
			}
			l := d.listener
			d.mu.Unlock()

			if l == nil {
				continue
			}
			l.TimeUpdated(pos)
			if ended {
				l.TrackEnded()
				return
			}
		}
	}
}
