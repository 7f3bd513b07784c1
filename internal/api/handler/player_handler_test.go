package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/playback"
)

func newPlayerFixture(t *testing.T) (*PlayerHandler, *libraryFixture) {
	t.Helper()
	f := newLibraryFixture(t)
	manager := playback.NewManager(f.library, func() playback.Device {
		// A tick longer than any test keeps the clock from advancing.
		return playback.NewClockDevice(time.Hour)
	}, zerolog.Nop())
	t.Cleanup(manager.Close)
	return NewPlayerHandler(manager, f.library), f
}

func playerRequest(e *echo.Echo, method, target, body string, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	return c, rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var snap map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return snap
}

func TestPlayerHandler_State_InitiallyIdle(t *testing.T) {
	e := newTestEcho()
	h, f := newPlayerFixture(t)
	alice := f.seedUser(t, "alice", domain.TypeFree)

	c, rec := playerRequest(e, http.MethodGet, "/api/player", "", alice)
	if err := h.State(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	snap := decodeSnapshot(t, rec)
	if snap["isPlaying"] != false {
		t.Fatalf("expected idle state, got %+v", snap)
	}
	if snap["currentIndex"] != float64(-1) {
		t.Fatalf("expected empty-queue cursor, got %v", snap["currentIndex"])
	}
}

func TestPlayerHandler_Play_StartsTrack(t *testing.T) {
	e := newTestEcho()
	h, f := newPlayerFixture(t)
	alice := f.seedUser(t, "alice", domain.TypeFree)
	track := f.seedTrack(t, "song", alice)

	c, rec := playerRequest(e, http.MethodPost, "/api/player/play", `{"trackId":1}`, alice)
	if err := h.Play(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	snap := decodeSnapshot(t, rec)
	if snap["isPlaying"] != true {
		t.Fatalf("expected playing state, got %+v", snap)
	}
	queue, _ := snap["queue"].([]any)
	if len(queue) != 1 {
		t.Fatalf("expected one queued track, got %d", len(queue))
	}
	current, _ := snap["currentTrack"].(map[string]any)
	if current == nil || current["id"] != float64(track.ID) {
		t.Fatalf("unexpected current track: %+v", snap["currentTrack"])
	}
}

func TestPlayerHandler_Play_UnknownTrack(t *testing.T) {
	e := newTestEcho()
	h, f := newPlayerFixture(t)
	alice := f.seedUser(t, "alice", domain.TypeFree)

	c, _ := playerRequest(e, http.MethodPost, "/api/player/play", `{"trackId":99}`, alice)
	if err := h.Play(c); err != domain.ErrTrackNotFound {
		t.Fatalf("expected ErrTrackNotFound, got %v", err)
	}
}

func TestPlayerHandler_Volume_OutOfRangeIsIgnored(t *testing.T) {
	e := newTestEcho()
	h, f := newPlayerFixture(t)
	alice := f.seedUser(t, "alice", domain.TypeFree)

	c, rec := playerRequest(e, http.MethodPost, "/api/player/volume", `{"volume":1.5}`, alice)
	if err := h.Volume(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	snap := decodeSnapshot(t, rec)
	if snap["volume"] != 0.7 {
		t.Fatalf("expected default volume to survive the rejected set, got %v", snap["volume"])
	}
}

func TestPlayerHandler_ClearQueue_KeepsCurrentTrack(t *testing.T) {
	e := newTestEcho()
	h, f := newPlayerFixture(t)
	alice := f.seedUser(t, "alice", domain.TypeFree)
	f.seedTrack(t, "song", alice)

	c, _ := playerRequest(e, http.MethodPost, "/api/player/play", `{"trackId":1}`, alice)
	if err := h.Play(c); err != nil {
		t.Fatalf("play: %v", err)
	}

	c, rec := playerRequest(e, http.MethodDelete, "/api/player/queue", "", alice)
	if err := h.ClearQueue(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	snap := decodeSnapshot(t, rec)
	queue, _ := snap["queue"].([]any)
	if len(queue) != 0 {
		t.Fatalf("expected empty queue, got %d entries", len(queue))
	}
	if snap["currentTrack"] == nil || snap["isPlaying"] != true {
		t.Fatalf("clearing the queue must not stop the current track: %+v", snap)
	}
}
