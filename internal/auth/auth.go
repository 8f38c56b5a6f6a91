package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

const (
	// DefaultRedirectURI uses explicit IPv4 loopback as required by Spotify for local development.
	// See: https://developer.spotify.com/documentation/web-api/concepts/redirect-uri
	DefaultRedirectURI = "http://127.0.0.1:8080/callback"

	callbackTimeout = 2 * time.Minute
)

// Scopes needed to read the profile and write playlists.
var Scopes = []string{
	spotifyauth.ScopePlaylistModifyPublic,
	spotifyauth.ScopePlaylistModifyPrivate,
	spotifyauth.ScopeUserReadPrivate,
}

var (
	// ErrMissingCredentials is returned when the client ID or secret is empty.
	ErrMissingCredentials = errors.New("missing Spotify client ID or secret")

	// ErrAuthTimeout is returned when the OAuth callback is not received in time.
	ErrAuthTimeout = errors.New("authentication timed out waiting for callback")

	// ErrStateMismatch is returned when the OAuth state parameter doesn't match.
	ErrStateMismatch = errors.New("OAuth state mismatch")
)

// Config holds the OAuth application settings.
type Config struct {
	ClientID     string
	ClientSecret string

	// RedirectURI defaults to DefaultRedirectURI. Its host is where the
	// callback listener binds.
	RedirectURI string

	// Cache defaults to DefaultTokenCache.
	Cache *TokenCache
}

// Authenticator runs the loopback OAuth flow for command line use.
type Authenticator struct {
	auth         *spotifyauth.Authenticator
	cache        *TokenCache
	callbackAddr string
	callbackPath string
}

// New creates an Authenticator.
// Returns ErrMissingCredentials if the client ID or secret is empty.
func New(cfg Config) (*Authenticator, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.RedirectURI == "" {
		cfg.RedirectURI = DefaultRedirectURI
	}

	redirect, err := url.Parse(cfg.RedirectURI)
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("invalid redirect URI %q", cfg.RedirectURI)
	}

	cache := cfg.Cache
	if cache == nil {
		cache, err = DefaultTokenCache()
		if err != nil {
			return nil, fmt.Errorf("creating token cache: %w", err)
		}
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithRedirectURL(cfg.RedirectURI),
		spotifyauth.WithScopes(Scopes...),
	)

	path := redirect.Path
	if path == "" {
		path = "/"
	}

	return &Authenticator{
		auth:         auth,
		cache:        cache,
		callbackAddr: redirect.Host,
		callbackPath: path,
	}, nil
}

// Authenticate returns an authenticated Spotify client.
// A cached token is reused while it still works, otherwise the browser flow runs.
func (a *Authenticator) Authenticate(ctx context.Context) (*spotify.Client, error) {
	token, err := a.cache.Load()
	if err != nil {
		return nil, fmt.Errorf("loading cached token: %w", err)
	}

	if token != nil {
		// oauth2 refreshes an expired access token on first use.
		client := spotify.New(a.auth.Client(ctx, token), spotify.WithRetry(true))

		if _, err := client.CurrentUser(ctx); err == nil {
			a.saveRefreshed(client, token)
			return client, nil
		}

		fmt.Println("Cached token invalid, starting new authentication...")
	}

	return a.runOAuthFlow(ctx)
}

// saveRefreshed caches the client's token when oauth2 replaced the old one.
func (a *Authenticator) saveRefreshed(client *spotify.Client, old *oauth2.Token) {
	current, err := client.Token()
	if err != nil || current.AccessToken == old.AccessToken {
		return
	}
	if err := a.cache.Save(current); err != nil {
		fmt.Printf("Warning: failed to cache refreshed token: %v\n", err)
	}
}

// runOAuthFlow performs the full OAuth authorization code flow.
func (a *Authenticator) runOAuthFlow(ctx context.Context) (*spotify.Client, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	tokenCh := make(chan *oauth2.Token, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(a.callbackPath, func(w http.ResponseWriter, r *http.Request) {
		a.handleCallback(w, r, state, tokenCh, errCh)
	})

	server := &http.Server{
		Addr:              a.callbackAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("callback server error: %w", err)
		}
	}()

	fmt.Println("\nTo authenticate, open this URL in your browser:")
	fmt.Println(a.auth.AuthURL(state))
	fmt.Println("\nWaiting for authentication...")

	var token *oauth2.Token
	select {
	case token = <-tokenCh:
	case err := <-errCh:
		_ = server.Shutdown(ctx)
		return nil, err
	case <-time.After(callbackTimeout):
		_ = server.Shutdown(ctx)
		return nil, ErrAuthTimeout
	case <-ctx.Done():
		_ = server.Shutdown(context.Background())
		return nil, ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	// Authentication already succeeded, a cache failure only costs a re-login.
	if err := a.cache.Save(token); err != nil {
		fmt.Printf("Warning: failed to cache token: %v\n", err)
	}

	return spotify.New(a.auth.Client(ctx, token), spotify.WithRetry(true)), nil
}

// handleCallback processes the OAuth callback from Spotify.
func (a *Authenticator) handleCallback(w http.ResponseWriter, r *http.Request, expectedState string, tokenCh chan<- *oauth2.Token, errCh chan<- error) {
	if r.URL.Query().Get("state") != expectedState {
		http.Error(w, "State mismatch", http.StatusBadRequest)
		sendErr(errCh, ErrStateMismatch)
		return
	}

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		http.Error(w, "Authentication failed: "+errMsg, http.StatusBadRequest)
		sendErr(errCh, fmt.Errorf("spotify auth error: %s", errMsg))
		return
	}

	token, err := a.auth.Token(r.Context(), expectedState, r)
	if err != nil {
		http.Error(w, "Failed to get token", http.StatusInternalServerError)
		sendErr(errCh, fmt.Errorf("exchanging code for token: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Authentication Successful</title></head>
<body>
<h1>You're connected to Spotify</h1>
<p>Close this window and return to the terminal to finish your mood playlist.</p>
</body>
</html>`)

	select {
	case tokenCh <- token:
	default:
	}
}

// sendErr reports err without blocking when an error is already pending.
func sendErr(errCh chan<- error, err error) {
	select {
	case errCh <- err:
	default:
	}
}

// generateState creates a random state string for OAuth.
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Logout removes the cached token.
func (a *Authenticator) Logout() error {
	return a.cache.Delete()
}
