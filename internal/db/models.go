package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
)

// User represents a Spotify user profile.
type User struct {
	ID          string
	DisplayName string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Session represents an authenticated web session.
type Session struct {
	ID           string
	UserID       string
	UserName     string // read from users on Get
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Generation is one playlist produced for a user.
type Generation struct {
	ID           uuid.UUID           `json:"id"`
	UserID       string              `json:"userId"`
	PlaylistID   string              `json:"playlistId"`
	PlaylistName string              `json:"playlistName"`
	MoodName     *string             `json:"moodName,omitempty"` // nullable - set when targets were derived
	Targets      *mood.Targets       `json:"targets,omitempty"`  // nullable
	Explanations []string            `json:"explanations"`
	Palette      []mood.PaletteColor `json:"palette"`
	TrackCount   int                 `json:"trackCount"`
	CreatedAt    time.Time           `json:"createdAt"`
}
