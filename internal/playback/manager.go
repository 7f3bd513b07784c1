package playback

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunedeck/music-system/internal/core/ports"
)

// Manager keeps one controller per user, created on demand. Each controller
// gets its own device (scoped lifetime, torn down with the manager), and
// every track start is recorded to the user's play history, making the store
// the system of record the queues are built from.
type Manager struct {
	mu          sync.Mutex
	controllers map[int64]*Controller
	closed      bool

	library   ports.LibraryService
	newDevice func() Device
	log       zerolog.Logger
	wg        sync.WaitGroup
}

func NewManager(library ports.LibraryService, newDevice func() Device, log zerolog.Logger) *Manager {
	return &Manager{
		controllers: make(map[int64]*Controller),
		library:     library,
		newDevice:   newDevice,
		log:         log,
	}
}

// Controller returns the user's controller, constructing it on first use.
func (m *Manager) Controller(userID int64) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.controllers[userID]; ok {
		return c
	}

	c := NewController(m.newDevice(), m.log.With().Int64("user_id", userID).Logger())
	m.controllers[userID] = c

	m.wg.Add(1)
	go m.watch(userID, c)
	return c
}

// Close tears down every controller and waits for their event loops.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	controllers := make([]*Controller, 0, len(m.controllers))
	for _, c := range m.controllers {
		controllers = append(controllers, c)
	}
	m.mu.Unlock()

	for _, c := range controllers {
		c.Close()
	}
	m.wg.Wait()
}

// watch consumes a controller's events until it closes, recording play
// history for every started track.
func (m *Manager) watch(userID int64, c *Controller) {
	defer m.wg.Done()

	for ev := range c.Events() {
		if ev.Type != EventTrackStarted || ev.Track == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := m.library.RecordPlay(ctx, userID, ev.Track.ID, time.Now().UTC()); err != nil {
			m.log.Error().Err(err).
				Int64("user_id", userID).
				Int64("track_id", ev.Track.ID).
				Msg("failed to record play")
		}
		cancel()
	}
}
