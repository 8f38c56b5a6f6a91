// Package config resolves application settings from command line flags,
// environment variables and an optional YAML file.
//
// Flags and environment variables are bound through go-flags struct tags.
// The YAML file fills whatever they leave empty, and built-in defaults
// fill the rest.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/invopop/yaml"

	"github.com/justestif/go-spotify-mood-playlist/internal/auth"
	"github.com/justestif/go-spotify-mood-playlist/internal/palette"
	"github.com/justestif/go-spotify-mood-playlist/internal/spotify"
	"github.com/justestif/go-spotify-mood-playlist/internal/web"
)

// DefaultAddr is the address the web server listens on.
const DefaultAddr = web.DefaultAddr

var (
	// ErrMissingCredentials is returned when SPOTIFY_ID or SPOTIFY_SECRET is not set.
	ErrMissingCredentials = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET")

	// ErrInvalidConfig is returned for out of range or unknown values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds every setting. The same struct is parsed from flags and
// decoded from the YAML file.
type Config struct {
	File string `short:"c" long:"config" env:"MOOD_CONFIG" description:"YAML configuration file" json:"-"`

	Spotify SpotifyOptions `group:"Spotify Options" json:"spotify"`
	Server  ServerOptions  `group:"Server Options" json:"server"`
	Palette PaletteOptions `group:"Palette Options" json:"palette"`
}

// SpotifyOptions configure the Spotify application and recommendations.
type SpotifyOptions struct {
	ClientID            string `long:"spotify-id" env:"SPOTIFY_ID" description:"Spotify application client ID" json:"clientId"`
	ClientSecret        string `long:"spotify-secret" env:"SPOTIFY_SECRET" description:"Spotify application client secret" json:"clientSecret"`
	RedirectURI         string `long:"redirect-uri" env:"MOOD_REDIRECT_URI" description:"OAuth redirect URI registered with Spotify" json:"redirectUri"`
	RecommendationLimit int    `long:"limit" env:"MOOD_LIMIT" description:"Number of tracks to request (1-100)" json:"recommendationLimit"`
}

// ServerOptions configure the web server.
type ServerOptions struct {
	Addr        string `long:"addr" env:"MOOD_ADDR" description:"Listen address" json:"addr"`
	DatabaseURL string `long:"database-url" env:"DATABASE_URL" description:"PostgreSQL URL, enables persistent sessions and history" json:"databaseUrl"`
}

// PaletteOptions configure color extraction.
type PaletteOptions struct {
	Strategy  string `long:"palette-strategy" env:"MOOD_PALETTE_STRATEGY" description:"Palette extraction strategy (kmeans or prominent)" json:"strategy"`
	CacheSize int    `long:"cache-size" env:"MOOD_CACHE_SIZE" description:"Cached image analyses, negative disables the cache" json:"cacheSize"`
}

// Load reads a YAML configuration file.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve merges the config file named by File, applies defaults and checks
// the resulting values.
func (c *Config) Resolve() error {
	if c.File != "" {
		file, err := Load(c.File)
		if err != nil {
			return err
		}
		c.merge(file)
	}
	c.applyDefaults()
	return c.check()
}

// Validate reports whether the Spotify credentials are present.
func (c *Config) Validate() error {
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}

// AnalysisCacheSize returns the analyzer cache size, zero when disabled.
func (c *Config) AnalysisCacheSize() int {
	return max(0, c.Palette.CacheSize)
}

// merge fills empty fields from file.
func (c *Config) merge(file Config) {
	setString(&c.Spotify.ClientID, file.Spotify.ClientID)
	setString(&c.Spotify.ClientSecret, file.Spotify.ClientSecret)
	setString(&c.Spotify.RedirectURI, file.Spotify.RedirectURI)
	setInt(&c.Spotify.RecommendationLimit, file.Spotify.RecommendationLimit)
	setString(&c.Server.Addr, file.Server.Addr)
	setString(&c.Server.DatabaseURL, file.Server.DatabaseURL)
	setString(&c.Palette.Strategy, file.Palette.Strategy)
	setInt(&c.Palette.CacheSize, file.Palette.CacheSize)
}

func (c *Config) applyDefaults() {
	setString(&c.Spotify.RedirectURI, auth.DefaultRedirectURI)
	setInt(&c.Spotify.RecommendationLimit, spotify.DefaultRecommendationLimit)
	setString(&c.Server.Addr, DefaultAddr)
	setString(&c.Palette.Strategy, palette.StrategyKMeans)
	setInt(&c.Palette.CacheSize, palette.DefaultCacheSize)
}

func (c *Config) check() error {
	switch c.Palette.Strategy {
	case palette.StrategyKMeans, palette.StrategyProminent:
	default:
		return fmt.Errorf("%w: palette strategy %q", ErrInvalidConfig, c.Palette.Strategy)
	}
	if c.Spotify.RecommendationLimit < 1 || c.Spotify.RecommendationLimit > 100 {
		return fmt.Errorf("%w: recommendation limit %d out of range 1-100", ErrInvalidConfig, c.Spotify.RecommendationLimit)
	}
	return nil
}

func setString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}
