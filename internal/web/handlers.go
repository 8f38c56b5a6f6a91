package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"

	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"github.com/justestif/go-spotify-mood-playlist/internal/db"
	"github.com/justestif/go-spotify-mood-playlist/internal/playlist"
)

// UserStore persists Spotify profiles on login.
type UserStore interface {
	Upsert(ctx context.Context, user *db.User) error
}

// HistoryLister returns a user's past generations.
type HistoryLister interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]db.Generation, error)
}

// APIFactory builds a Spotify API client for a user token.
type APIFactory func(ctx context.Context, token *oauth2.Token) *spotifyapi.Client

// HandlersConfig holds the collaborators of Handlers.
type HandlersConfig struct {
	Auth      *spotifyauth.Authenticator
	Sessions  SessionManager
	Templates *Templates
	Playlists *playlist.Service
	Users     UserStore
	History   HistoryLister

	// NewAPI defaults to a client authorized through Auth.
	NewAPI APIFactory
}

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	auth      *spotifyauth.Authenticator
	sessions  SessionManager
	templates *Templates
	playlists *playlist.Service
	users     UserStore
	history   HistoryLister
	newAPI    APIFactory
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg HandlersConfig) *Handlers {
	h := &Handlers{
		auth:      cfg.Auth,
		sessions:  cfg.Sessions,
		templates: cfg.Templates,
		playlists: cfg.Playlists,
		users:     cfg.Users,
		history:   cfg.History,
		newAPI:    cfg.NewAPI,
	}
	if h.newAPI == nil {
		h.newAPI = func(ctx context.Context, token *oauth2.Token) *spotifyapi.Client {
			return spotifyapi.New(h.auth.Client(ctx, token), spotifyapi.WithRetry(true))
		}
	}
	return h
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	session := sessionFromRequest(h.sessions, r)

	data := HomePageData{
		PageData: PageData{
			Title:       "Mood Playlist",
			CurrentPath: r.URL.Path,
		},
		Authenticated:  session != nil,
		HistoryEnabled: h.history != nil,
	}

	if session != nil {
		data.User = &UserData{
			ID:   session.UserID,
			Name: session.UserName,
		}

		if h.history != nil {
			gens, err := h.history.ListForUser(r.Context(), session.UserID, recentOnHome)
			if err != nil {
				log.Printf("Warning: failed to load history for %s: %v", session.UserID, err)
				data.Flash = &FlashMessage{Type: "warning", Message: "Could not load your recent playlists."}
			}
			data.History = toGenerationData(gens)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "home", data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// RecentHistory renders the recent playlists fragment (GET /partials/history).
func (h *Handlers) RecentHistory(w http.ResponseWriter, r *http.Request) {
	session := sessionFromRequest(h.sessions, r)
	if session == nil || h.history == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	gens, err := h.history.ListForUser(r.Context(), session.UserID, recentOnHome)
	if err != nil {
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.RenderPartial(w, "history", toGenerationData(gens)); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// Login initiates the Spotify OAuth flow (GET /auth/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	state, err := generateOAuthState()
	if err != nil {
		http.Error(w, "Failed to generate state", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300, // 5 minutes
	})

	http.Redirect(w, r, h.auth.AuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the OAuth callback from Spotify (GET /callback).
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil {
		http.Error(w, "Missing state cookie", http.StatusBadRequest)
		return
	}

	state := r.URL.Query().Get("state")
	if state != stateCookie.Value {
		http.Error(w, "State mismatch", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		http.Error(w, fmt.Sprintf("Spotify auth error: %s", errMsg), http.StatusBadRequest)
		return
	}

	token, err := h.auth.Token(r.Context(), state, r)
	if err != nil {
		http.Error(w, "Failed to get token", http.StatusInternalServerError)
		return
	}

	user, err := h.newAPI(r.Context(), token).CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}

	// Sessions reference users, so the profile must exist first.
	if h.users != nil {
		profile := &db.User{ID: user.ID, DisplayName: user.DisplayName, Email: user.Email}
		if err := h.users.Upsert(r.Context(), profile); err != nil {
			log.Printf("Error saving user %s: %v", user.ID, err)
			http.Error(w, "Failed to save user", http.StatusInternalServerError)
			return
		}
	}

	session, err := h.sessions.Create(r.Context(), token, user.ID, user.DisplayName)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, session)
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// Logout clears the session and redirects to home (POST /auth/logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	session := sessionFromRequest(h.sessions, r)
	if session != nil {
		h.sessions.Delete(r.Context(), session.ID)
	}

	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// generateOAuthState creates a random state string for OAuth.
func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
