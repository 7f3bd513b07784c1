package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tunedeck/music-system/internal/api/handler"
	"github.com/tunedeck/music-system/internal/api/middleware"
	"github.com/tunedeck/music-system/internal/core/ports"
	"github.com/tunedeck/music-system/internal/playback"
)

// Deps carries everything the router needs. Mongo and Redis are nil when the
// service runs on its in-process fallbacks; they only feed the readiness
// probe here.
type Deps struct {
	Log zerolog.Logger

	Auth    ports.AuthService
	Library ports.LibraryService
	Premium ports.PremiumService
	Users   ports.UserRepository

	Sessions ports.SessionStore
	Player   *playback.Manager

	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool

	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("music"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Users, deps.SessionTTL, deps.SecureCookie)
	trackHandler := handler.NewTrackHandler(deps.Library, deps.Premium)
	playlistHandler := handler.NewPlaylistHandler(deps.Library, deps.Premium)
	recentHandler := handler.NewRecentHandler(deps.Library, deps.Premium)
	playerHandler := handler.NewPlayerHandler(deps.Player, deps.Library)
	premiumHandler := handler.NewPremiumHandler(deps.Premium)

	authMW := middleware.Auth(deps.Sessions, deps.JWTSecret)
	adminMW := middleware.RequireAdmin(deps.Premium)

	// --- Ops routes (no auth) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Public API routes ---
	api := e.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// --- Authenticated API routes ---
	auth := api.Group("", authMW)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/user", authHandler.CurrentUser)
	auth.DELETE("/users/:id", authHandler.DeleteUser, adminMW)

	auth.GET("/tracks", trackHandler.List)
	auth.POST("/tracks", trackHandler.Create)
	auth.GET("/tracks/premium", trackHandler.Premium)
	auth.GET("/tracks/artist/:value", trackHandler.ByArtist)
	auth.GET("/tracks/album/:value", trackHandler.ByAlbum)
	auth.GET("/tracks/genre/:value", trackHandler.ByGenre)
	auth.GET("/tracks/:id", trackHandler.Get)
	auth.PUT("/tracks/:id", trackHandler.Update)
	auth.DELETE("/tracks/:id", trackHandler.Delete)

	auth.GET("/playlists", playlistHandler.List)
	auth.POST("/playlists", playlistHandler.Create)
	auth.GET("/playlists/public", playlistHandler.Public)
	auth.GET("/playlists/:id", playlistHandler.Get)
	auth.PUT("/playlists/:id", playlistHandler.Update)
	auth.DELETE("/playlists/:id", playlistHandler.Delete)
	auth.GET("/playlists/:id/tracks", playlistHandler.Tracks)
	auth.POST("/playlists/:id/tracks", playlistHandler.AddTrack)
	auth.DELETE("/playlists/:id/tracks/:trackId", playlistHandler.RemoveTrack)
	auth.PUT("/playlist-tracks/:id/position", playlistHandler.MoveTrack)

	auth.GET("/recently-played", recentHandler.List)
	auth.POST("/recently-played", recentHandler.Record)

	auth.GET("/player", playerHandler.State)
	auth.POST("/player/play", playerHandler.Play)
	auth.POST("/player/playlist", playerHandler.PlayPlaylist)
	auth.POST("/player/toggle", playerHandler.Toggle)
	auth.POST("/player/next", playerHandler.Next)
	auth.POST("/player/previous", playerHandler.Previous)
	auth.POST("/player/seek", playerHandler.Seek)
	auth.POST("/player/volume", playerHandler.Volume)
	auth.POST("/player/mute", playerHandler.Mute)
	auth.POST("/player/queue", playerHandler.Enqueue)
	auth.DELETE("/player/queue", playerHandler.ClearQueue)

	auth.GET("/premium/status", premiumHandler.Status)
	auth.POST("/premium/subscribe", premiumHandler.Subscribe)
	auth.GET("/premium/subscriptions", premiumHandler.Subscriptions)

	return e
}
