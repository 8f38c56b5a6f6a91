// Package playlist turns an image or a list of colors into a Spotify
// playlist whose recommendations follow the colors' mood.
package playlist

import (
	"context"
	"fmt"
	"log"

	"github.com/justestif/go-spotify-mood-playlist/internal/db"
	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
	"github.com/justestif/go-spotify-mood-playlist/internal/palette"
	"github.com/justestif/go-spotify-mood-playlist/internal/spotify"
)

// Defaults applied when a request leaves them empty.
const (
	DefaultName        = "Mood Playlist"
	DefaultDescription = "Generated from image mood"
)

// SpotifyClient is the part of the Spotify API used to build a playlist.
type SpotifyClient interface {
	Recommend(ctx context.Context, req spotify.RecommendRequest) ([]spotify.Track, error)
	CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (string, error)
	AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error
}

// ImageAnalyzer maps an image to mood targets.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, src palette.Source) (mood.Result, error)
}

// HistoryStore records generated playlists.
type HistoryStore interface {
	Create(ctx context.Context, gen *db.Generation) error
}

// GenerateRequest describes a playlist to build. Seeds and target overrides
// use the flat snake_case keys of the recommendations API.
type GenerateRequest struct {
	TargetOverrides

	SeedGenres          []string `json:"seed_genres"`
	SeedArtists         []string `json:"seed_artists"`
	ImageURL            string   `json:"imageUrl"`
	ImageBase64         string   `json:"imageBase64"`
	PaletteHex          []string `json:"paletteHex"`
	PlaylistName        string   `json:"playlistName"`
	PlaylistDescription string   `json:"playlistDescription"`
	Public              bool     `json:"public"`
}

// GenerateResult is the outcome of a successful generation.
type GenerateResult struct {
	PlaylistID     string          `json:"playlistId"`
	PlaylistURL    string          `json:"playlistUrl"`
	Tracks         []spotify.Track `json:"tracks"`
	TrackCount     int             `json:"trackCount"`
	DerivedTargets *mood.Targets   `json:"derivedTargets"`
	Analysis       *mood.Analysis  `json:"analysis"`
	Mood           string          `json:"mood,omitempty"`
}

// Service builds playlists.
type Service struct {
	analyzer ImageAnalyzer
	history  HistoryStore
	limit    int
}

// Option configures a Service.
type Option func(*Service)

// WithHistory records every generated playlist in store.
func WithHistory(store HistoryStore) Option {
	return func(s *Service) {
		s.history = store
	}
}

// WithRecommendationLimit sets how many tracks are requested.
func WithRecommendationLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// New creates a Service that analyzes images with analyzer.
func New(analyzer ImageAnalyzer, opts ...Option) *Service {
	s := &Service{
		analyzer: analyzer,
		limit:    spotify.DefaultRecommendationLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Derive computes mood targets from the request's image or palette.
// An image takes precedence over PaletteHex. It returns nil when the request
// carries neither.
func (s *Service) Derive(ctx context.Context, req GenerateRequest) (*mood.Result, error) {
	src := palette.Source{URL: req.ImageURL, Base64: req.ImageBase64}

	switch {
	case !src.Empty():
		result, err := s.analyzer.Analyze(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("analyzing image: %w", err)
		}
		return &result, nil
	case len(req.PaletteHex) > 0:
		result, err := mood.MapHexList(req.PaletteHex)
		if err != nil {
			return nil, fmt.Errorf("mapping palette: %w", err)
		}
		return &result, nil
	default:
		return nil, nil
	}
}

// Generate derives targets, fetches recommendations and saves them as a new
// playlist owned by userID.
func (s *Service) Generate(ctx context.Context, client SpotifyClient, userID string, req GenerateRequest) (*GenerateResult, error) {
	derived, err := s.Derive(ctx, req)
	if err != nil {
		return nil, err
	}

	var (
		derivedTargets *mood.Targets
		analysis       *mood.Analysis
		moodName       string
	)
	if derived != nil {
		derivedTargets = &derived.Targets
		analysis = &derived.Analysis
		moodName = mood.Name(derived.Targets)
		if !mood.HasSignal(derived.Targets) {
			log.Printf("Warning: no mood signal in palette for user %s, using seeds only", userID)
		}
	}

	targets := Resolve(derivedTargets, req.TargetOverrides)

	tracks, err := client.Recommend(ctx, spotify.RecommendRequest{
		SeedGenres:  firstN(req.SeedGenres, spotify.MaxSeeds),
		SeedArtists: firstN(req.SeedArtists, spotify.MaxSeeds),
		Targets:     targets,
		Limit:       s.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching recommendations: %w", err)
	}

	name := req.PlaylistName
	if name == "" {
		name = DefaultName
	}
	description := req.PlaylistDescription
	if description == "" {
		description = DefaultDescription
		if moodName != "" {
			description = fmt.Sprintf("%s: %s", DefaultDescription, moodName)
		}
	}

	playlistID, err := client.CreatePlaylist(ctx, userID, name, description, req.Public)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	if err := client.AddTracksToPlaylist(ctx, playlistID, ids); err != nil {
		return nil, err
	}

	result := &GenerateResult{
		PlaylistID:     playlistID,
		PlaylistURL:    spotify.PlaylistURL(playlistID),
		Tracks:         tracks,
		TrackCount:     len(tracks),
		DerivedTargets: derivedTargets,
		Analysis:       analysis,
		Mood:           moodName,
	}

	s.record(ctx, userID, name, result)
	return result, nil
}

// record stores the generation. The playlist already exists on Spotify, so
// a failure here is logged and not returned.
func (s *Service) record(ctx context.Context, userID, name string, result *GenerateResult) {
	if s.history == nil || userID == "" {
		return
	}

	gen := &db.Generation{
		UserID:       userID,
		PlaylistID:   result.PlaylistID,
		PlaylistName: name,
		Targets:      result.DerivedTargets,
		TrackCount:   result.TrackCount,
	}
	if result.Mood != "" {
		gen.MoodName = &result.Mood
	}
	if result.Analysis != nil {
		gen.Explanations = result.Analysis.Explanations
		gen.Palette = result.Analysis.Palette
	}

	if err := s.history.Create(ctx, gen); err != nil {
		log.Printf("Warning: failed to record generation for user %s: %v", userID, err)
	}
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
