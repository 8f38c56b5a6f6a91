package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/justestif/go-spotify-mood-playlist/internal/auth"
	"github.com/justestif/go-spotify-mood-playlist/internal/config"
	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
	"github.com/justestif/go-spotify-mood-playlist/internal/playlist"
	"github.com/justestif/go-spotify-mood-playlist/internal/spotify"
)

type generateCmd struct {
	cfg *config.Config

	colorInput

	Genres      []string `short:"g" long:"genre" description:"Seed genre, repeat for more (max 5)"`
	Artists     []string `short:"a" long:"artist" description:"Seed artist ID, repeat for more (max 5)"`
	Name        string   `short:"n" long:"name" description:"Playlist name" default:"Mood Playlist"`
	Description string   `short:"d" long:"description" description:"Playlist description"`
	Public      bool     `short:"p" long:"public" description:"Make the playlist public"`
	Logout      bool     `long:"logout" description:"Forget the cached Spotify login first"`
}

// Execute logs in to Spotify and creates the playlist.
func (c *generateCmd) Execute(_ []string) error {
	if err := c.cfg.Resolve(); err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	req, err := c.request()
	if err != nil {
		return err
	}
	req.SeedGenres = c.Genres
	req.SeedArtists = c.Artists
	req.PlaylistName = c.Name
	req.PlaylistDescription = c.Description
	req.Public = c.Public

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	authenticator, err := auth.New(auth.Config{
		ClientID:     c.cfg.Spotify.ClientID,
		ClientSecret: c.cfg.Spotify.ClientSecret,
		RedirectURI:  c.cfg.Spotify.RedirectURI,
	})
	if err != nil {
		return err
	}
	if c.Logout {
		if err := authenticator.Logout(); err != nil {
			return err
		}
	}

	api, err := authenticator.Authenticate(ctx)
	if err != nil {
		return fmt.Errorf("authenticating: %w", err)
	}

	analyzer, err := newAnalyzer(c.cfg)
	if err != nil {
		return err
	}
	svc := playlist.New(analyzer, playlist.WithRecommendationLimit(c.cfg.Spotify.RecommendationLimit))

	fmt.Println("Creating playlist...")
	result, err := svc.Generate(ctx, spotify.New(api), "", req)
	if err != nil {
		return err
	}

	if result.DerivedTargets != nil {
		printAnalysis(&mood.Result{Targets: *result.DerivedTargets, Analysis: *result.Analysis})
		fmt.Println()
	}

	fmt.Printf("Created %q with %d tracks\n", c.Name, result.TrackCount)
	fmt.Println(result.PlaylistURL)
	for i, t := range result.Tracks {
		fmt.Printf("%3d. %s - %s\n", i+1, t.Name, strings.Join(t.Artists, ", "))
	}
	return nil
}
