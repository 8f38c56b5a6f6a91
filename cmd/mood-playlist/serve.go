package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/justestif/go-spotify-mood-playlist/internal/config"
	"github.com/justestif/go-spotify-mood-playlist/internal/db"
	"github.com/justestif/go-spotify-mood-playlist/internal/playlist"
	"github.com/justestif/go-spotify-mood-playlist/internal/web"
	webfs "github.com/justestif/go-spotify-mood-playlist/web"
)

type serveCmd struct {
	cfg *config.Config
}

// Execute runs the web application until interrupted.
func (c *serveCmd) Execute(_ []string) error {
	if err := c.cfg.Resolve(); err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	analyzer, err := newAnalyzer(c.cfg)
	if err != nil {
		return err
	}

	serverCfg := web.ServerConfig{
		Addr:         c.cfg.Server.Addr,
		ClientID:     c.cfg.Spotify.ClientID,
		ClientSecret: c.cfg.Spotify.ClientSecret,
		RedirectURI:  c.cfg.Spotify.RedirectURI,
		TemplatesFS:  templates,
		StaticFS:     static,
	}
	opts := []playlist.Option{playlist.WithRecommendationLimit(c.cfg.Spotify.RecommendationLimit)}

	if c.cfg.Server.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		database, err := db.New(ctx, c.cfg.Server.DatabaseURL)
		if err == nil {
			err = database.Migrate(ctx)
		}
		cancel()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		serverCfg.Sessions = web.NewDBSessionStore(database)
		serverCfg.Users = database.Users()
		serverCfg.History = database.Generations()
		opts = append(opts, playlist.WithHistory(database.Generations()))

		log.Println("Using PostgreSQL for sessions and history")
	} else {
		log.Println("No database configured, sessions are kept in memory and history is disabled")
	}

	serverCfg.Playlists = playlist.New(analyzer, opts...)

	server, err := web.NewServer(serverCfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
