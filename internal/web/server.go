// Package web provides the HTTP server, JSON API and web UI for building
// mood playlists.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/justestif/go-spotify-mood-playlist/internal/auth"
	"github.com/justestif/go-spotify-mood-playlist/internal/playlist"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultRedirectURI must match the Spotify app configuration.
	DefaultRedirectURI = auth.DefaultRedirectURI
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr         string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TemplatesFS  fs.FS
	StaticFS     fs.FS

	// Playlists builds playlists and derives targets. Required.
	Playlists *playlist.Service

	// Sessions defaults to an in-memory store.
	Sessions SessionManager

	// SessionSweepInterval defaults to DefaultSessionSweepInterval.
	SessionSweepInterval time.Duration

	// Users and History are optional and backed by the database.
	Users   UserStore
	History HistoryLister
}

// Server is the HTTP server for the web application.
type Server struct {
	router        chi.Router
	server        *http.Server
	handlers      *Handlers
	sessions      SessionManager
	sweepInterval time.Duration
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Playlists == nil {
		return nil, errors.New("playlist service is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RedirectURI == "" {
		cfg.RedirectURI = DefaultRedirectURI
	}
	if cfg.SessionSweepInterval <= 0 {
		cfg.SessionSweepInterval = DefaultSessionSweepInterval
	}

	authenticator := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithRedirectURL(cfg.RedirectURI),
		spotifyauth.WithScopes(auth.Scopes...),
	)

	templates, err := NewTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	sessions := cfg.Sessions
	if sessions == nil {
		sessions = NewSessionStore()
	}

	handlers := NewHandlers(HandlersConfig{
		Auth:      authenticator,
		Sessions:  sessions,
		Templates: templates,
		Playlists: cfg.Playlists,
		Users:     cfg.Users,
		History:   cfg.History,
	})

	s := &Server{
		router:        NewRouter(handlers, cfg.StaticFS),
		handlers:      handlers,
		sessions:      sessions,
		sweepInterval: cfg.SessionSweepInterval,
	}

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// NewRouter wires middleware and routes around h.
func NewRouter(h *Handlers, staticFS fs.FS) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))

	if staticFS != nil {
		fileServer := http.FileServer(http.FS(staticFS))
		router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	router.Get("/", h.Home)
	router.Get("/partials/history", h.RecentHistory)

	router.Get("/auth/login", h.Login)
	router.Get("/callback", h.Callback)
	router.Post("/auth/logout", h.Logout)

	router.Route("/api", func(r chi.Router) {
		r.Get("/genres", h.Genres)
		r.Post("/playlist/generate", h.Generate)
		r.Post("/mood/analyze", h.Analyze)
		r.Get("/history", h.History)
	})

	return router
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting server at http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
// Expired sessions are swept in the background while it runs.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go sweepSessions(sweepCtx, s.sessions, s.sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
