// Package metrics defines and registers all custom Prometheus metrics for the
// music system API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "music"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Library metrics ───────────────────────────────────────────────────────────

// TracksCreatedTotal counts uploaded tracks.
// Label:
//   - quality: "standard", "high", or "ultra"
var TracksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracks_created_total",
		Help:      "Total number of tracks created, by quality tier.",
	},
	[]string{"quality"},
)

// PlaylistsCreatedTotal counts created playlists.
var PlaylistsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "playlists_created_total",
		Help:      "Total number of playlists created.",
	},
)

// ── Playback metrics ──────────────────────────────────────────────────────────

// PlaybackCommandsTotal counts transport commands issued through the player API.
// Label:
//   - command: "play", "playlist", "toggle", "next", "previous", "seek",
//     "volume", "mute", "queue", "clear_queue"
var PlaybackCommandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "playback_commands_total",
		Help:      "Total number of player transport commands, by command.",
	},
	[]string{"command"},
)

// PlaysRecordedTotal counts recently-played rows written (new or refreshed).
var PlaysRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plays_recorded_total",
		Help:      "Total number of plays recorded to listening history.",
	},
)

// ── Premium metrics ───────────────────────────────────────────────────────────

// SubscriptionsCreatedTotal counts opened premium subscriptions.
var SubscriptionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_created_total",
		Help:      "Total number of premium subscriptions opened.",
	},
)
