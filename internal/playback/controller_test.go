package playback

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tunedeck/music-system/internal/core/domain"
)

// fakeDevice records calls and lets tests fire notifications by hand.
type fakeDevice struct {
	mu       sync.Mutex
	listener DeviceListener

	token   int
	loads   []string
	plays   []int
	pauses  int
	seeks   []float64
	volumes []float64
	playErr error
	closed  bool
}

func (d *fakeDevice) SetListener(l DeviceListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listener = l
}

func (d *fakeDevice) Load(source string, durationSec int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.token++
	d.loads = append(d.loads, source)
	return d.token
}

func (d *fakeDevice) Play(token int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.playErr != nil {
		return d.playErr
	}
	d.plays = append(d.plays, token)
	return nil
}

func (d *fakeDevice) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pauses++
}

func (d *fakeDevice) Seek(seconds float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seeks = append(d.seeks, seconds)
}

func (d *fakeDevice) SetVolume(v float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volumes = append(d.volumes, v)
}

func (d *fakeDevice) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

func (d *fakeDevice) endTrack() {
	d.mu.Lock()
	l := d.listener
	d.mu.Unlock()
	l.TrackEnded()
}

func (d *fakeDevice) lastVolume() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.volumes[len(d.volumes)-1]
}

func newTestController() (*Controller, *fakeDevice) {
	device := &fakeDevice{}
	return NewController(device, zerolog.Nop()), device
}

func tracks(n int) []*domain.Track {
	out := make([]*domain.Track, n)
	for i := range out {
		out[i] = &domain.Track{ID: int64(i + 1), Title: "T", FilePath: "/t.mp3", Duration: 180}
	}
	return out
}

func TestPlayTrack_AppendsWhenAbsent(t *testing.T) {
	c, _ := newTestController()
	list := tracks(2)

	c.PlayTrack(list[0])
	c.AddToQueue(list[1])

	snap := c.Snapshot()
	assert.Equal(t, 2, len(snap.Queue))
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.True(t, snap.IsPlaying)
	assert.Equal(t, list[0].ID, snap.CurrentTrack.ID)
}

func TestPlayTrack_ReusesExistingPosition(t *testing.T) {
	c, _ := newTestController()
	list := tracks(3)
	c.PlayPlaylist(list)

	c.PlayTrack(list[2])

	snap := c.Snapshot()
	assert.Equal(t, 3, len(snap.Queue), "playing a queued track must not duplicate it")
	assert.Equal(t, 2, snap.CurrentIndex)
}

func TestPlayPlaylist_EmptyListIsNoop(t *testing.T) {
	c, device := newTestController()

	c.PlayPlaylist(nil)

	snap := c.Snapshot()
	assert.Equal(t, -1, snap.CurrentIndex)
	assert.False(t, snap.IsPlaying)
	assert.Empty(t, device.loads)
}

func TestSkipToNext_WrapsToHead(t *testing.T) {
	c, _ := newTestController()
	list := tracks(3)
	c.PlayPlaylist(list)

	// N-1 skips walk to the tail, one more wraps back to index 0.
	c.SkipToNext()
	c.SkipToNext()
	assert.Equal(t, 2, c.Snapshot().CurrentIndex)

	c.SkipToNext()
	snap := c.Snapshot()
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, list[0].ID, snap.CurrentTrack.ID)
}

func TestSkipToPrevious_WrapsToTail(t *testing.T) {
	c, _ := newTestController()
	list := tracks(3)
	c.PlayPlaylist(list)

	c.SkipToPrevious()
	snap := c.Snapshot()
	assert.Equal(t, len(list)-1, snap.CurrentIndex)

	// Wrap-forward is the exact inverse.
	c.SkipToNext()
	assert.Equal(t, 0, c.Snapshot().CurrentIndex)
}

func TestSkip_EmptyQueueIsNoop(t *testing.T) {
	c, _ := newTestController()

	c.SkipToNext()
	c.SkipToPrevious()

	snap := c.Snapshot()
	assert.Equal(t, -1, snap.CurrentIndex)
	assert.Nil(t, snap.CurrentTrack)
}

func TestPlayTrackThenSkipToPrevious(t *testing.T) {
	c, _ := newTestController()
	list := tracks(2)
	c.PlayPlaylist(list)

	c.PlayTrack(list[1])
	c.SkipToPrevious()

	snap := c.Snapshot()
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, list[0].ID, snap.CurrentTrack.ID)
}

func TestSetVolume_RejectsOutOfRange(t *testing.T) {
	c, _ := newTestController()

	c.SetVolume(0.4)
	c.SetVolume(-0.1)
	c.SetVolume(1.5)

	assert.Equal(t, 0.4, c.Snapshot().Volume, "out-of-range values are rejected, not clamped")
}

func TestSetVolume_NonzeroClearsMute(t *testing.T) {
	c, device := newTestController()

	c.ToggleMute()
	assert.True(t, c.Snapshot().IsMuted)

	c.SetVolume(0.5)
	snap := c.Snapshot()
	assert.False(t, snap.IsMuted)
	assert.Equal(t, 0.5, snap.Volume)
	assert.Equal(t, 0.5, device.lastVolume())
}

func TestToggleMute_RestoresExactVolume(t *testing.T) {
	c, device := newTestController()

	c.SetVolume(0.37)
	c.ToggleMute()

	snap := c.Snapshot()
	assert.True(t, snap.IsMuted)
	assert.Equal(t, float64(0), device.lastVolume(), "mute drives the device to zero")

	c.ToggleMute()
	snap = c.Snapshot()
	assert.False(t, snap.IsMuted)
	assert.Equal(t, 0.37, snap.Volume)
	assert.Equal(t, 0.37, device.lastVolume())
}

func TestTogglePlayPause(t *testing.T) {
	c, device := newTestController()
	c.PlayTrack(tracks(1)[0])

	c.TogglePlayPause()
	assert.False(t, c.Snapshot().IsPlaying)
	assert.Equal(t, 1, device.pauses)

	c.TogglePlayPause()
	assert.True(t, c.Snapshot().IsPlaying)
}

func TestPlay_NoopWithoutCurrentTrack(t *testing.T) {
	c, device := newTestController()

	c.Play()

	assert.False(t, c.Snapshot().IsPlaying)
	assert.Empty(t, device.plays)
}

func TestPause_NoopWhenAlreadyPaused(t *testing.T) {
	c, device := newTestController()
	c.PlayTrack(tracks(1)[0])

	c.Pause()
	c.Pause()

	assert.Equal(t, 1, device.pauses)
}

func TestPlayRejection_DegradesToStopped(t *testing.T) {
	c, device := newTestController()
	device.playErr = errors.New("autoplay blocked")

	c.PlayTrack(tracks(1)[0])

	snap := c.Snapshot()
	assert.False(t, snap.IsPlaying, "a rejected play reverts to stopped, never panics")
	assert.NotNil(t, snap.CurrentTrack)
}

func TestTrackEnded_AutoAdvances(t *testing.T) {
	c, device := newTestController()
	list := tracks(2)
	c.PlayPlaylist(list)

	device.endTrack()

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.True(t, snap.IsPlaying)
}

func TestTrackEnded_SingleTrackQueueLoops(t *testing.T) {
	c, device := newTestController()
	c.PlayTrack(tracks(1)[0])

	device.endTrack()
	device.endTrack()

	snap := c.Snapshot()
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.True(t, snap.IsPlaying, "a one-track queue loops by design")
	assert.Equal(t, 3, len(device.loads), "each loop reloads the track")
}

func TestTrackEnded_AtQueueEndWrapsAround(t *testing.T) {
	c, device := newTestController()
	list := tracks(2)
	c.PlayPlaylist(list)
	c.SkipToNext()

	device.endTrack()

	snap := c.Snapshot()
	assert.Equal(t, 0, snap.CurrentIndex, "end of queue auto-loops rather than stopping")
	assert.True(t, snap.IsPlaying)
}

func TestSeek_PassesThroughUnvalidated(t *testing.T) {
	c, device := newTestController()
	c.PlayTrack(tracks(1)[0])

	c.Seek(9999)

	assert.Equal(t, []float64{9999}, device.seeks)
}

func TestClearQueue_ResetsCursor(t *testing.T) {
	c, _ := newTestController()
	c.PlayPlaylist(tracks(3))

	c.ClearQueue()

	snap := c.Snapshot()
	assert.Empty(t, snap.Queue)
	assert.Equal(t, -1, snap.CurrentIndex)
	assert.NotNil(t, snap.CurrentTrack, "clearing the queue does not stop the current track")
}

func TestClose_TearsDownDevice(t *testing.T) {
	c, device := newTestController()

	c.Close()
	c.Close() // idempotent

	assert.True(t, device.closed)
	_, open := <-c.Events()
	assert.False(t, open, "event channel closes with the controller")
}
