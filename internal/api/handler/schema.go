package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username       string `json:"username"        validate:"required,min=3"`
	Email          string `json:"email"           validate:"required,email"`
	Password       string `json:"password"        validate:"required,min=6"`
	UserType       string `json:"userType"        validate:"omitempty,oneof=free premium admin"`
	ProfilePicture string `json:"profilePicture"`
}

type loginRequest struct {
	// Identifier is a username or an email address.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// --- Tracks ---

type createTrackRequest struct {
	Title     string `json:"title"    validate:"required"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	Duration  int    `json:"duration" validate:"omitempty,gt=0"`
	FilePath  string `json:"filePath" validate:"required"`
	Genre     string `json:"genre"`
	Year      string `json:"year"`
	AlbumArt  string `json:"albumArt"`
	IsPremium bool   `json:"isPremium"`
	Quality   string `json:"quality"  validate:"omitempty,oneof=standard high ultra"`
}

type updateTrackRequest struct {
	Title     *string `json:"title"`
	Artist    *string `json:"artist"`
	Album     *string `json:"album"`
	Duration  *int    `json:"duration"  validate:"omitempty,gt=0"`
	FilePath  *string `json:"filePath"`
	Genre     *string `json:"genre"`
	Year      *string `json:"year"`
	AlbumArt  *string `json:"albumArt"`
	IsPremium *bool   `json:"isPremium"`
	Quality   *string `json:"quality"   validate:"omitempty,oneof=standard high ultra"`
}

// --- Playlists ---

type createPlaylistRequest struct {
	Name     string `json:"name" validate:"required"`
	CoverArt string `json:"coverArt"`
	IsPublic *bool  `json:"isPublic"`
}

type updatePlaylistRequest struct {
	Name     *string `json:"name"`
	CoverArt *string `json:"coverArt"`
	IsPublic *bool   `json:"isPublic"`
}

type addPlaylistTrackRequest struct {
	TrackID  int64 `json:"trackId" validate:"required,gt=0"`
	Position int   `json:"position"`
}

type movePlaylistTrackRequest struct {
	Position int `json:"position"`
}

// --- Recently played ---

type recordPlayRequest struct {
	TrackID int64 `json:"trackId" validate:"required,gt=0"`
}

// --- Player ---

type playTrackRequest struct {
	TrackID int64 `json:"trackId" validate:"required,gt=0"`
}

type playPlaylistRequest struct {
	PlaylistID int64 `json:"playlistId" validate:"required,gt=0"`
}

type seekRequest struct {
	Seconds float64 `json:"seconds"`
}

type volumeRequest struct {
	Volume float64 `json:"volume"`
}

// --- Premium ---

type subscribeRequest struct {
	// UserID targets another account; only admins may set it.
	UserID       int64  `json:"userId"`
	DurationDays int    `json:"durationDays" validate:"required,gt=0"`
	Amount       string `json:"amount"       validate:"required"`
}

type premiumStatusResponse struct {
	IsPremium bool   `json:"isPremium"`
	UserType  string `json:"userType"`
}
