package web

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"log"
	"net/http"
	"strconv"

	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/justestif/go-spotify-mood-playlist/internal/db"
	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
	"github.com/justestif/go-spotify-mood-playlist/internal/palette"
	"github.com/justestif/go-spotify-mood-playlist/internal/playlist"
	"github.com/justestif/go-spotify-mood-playlist/internal/spotify"
)

const (
	maxRequestBytes = 16 << 20
	recentOnHome    = 5
	maxHistoryLimit = 100
)

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AnalyzeRequest is the body of POST /api/mood/analyze.
type AnalyzeRequest struct {
	ImageURL    string   `json:"imageUrl"`
	ImageBase64 string   `json:"imageBase64"`
	PaletteHex  []string `json:"paletteHex"`
}

// AnalyzeResponse describes the mood derived from an image or palette.
type AnalyzeResponse struct {
	Targets     mood.Targets  `json:"targets"`
	Analysis    mood.Analysis `json:"analysis"`
	Mood        string        `json:"mood"`
	Description string        `json:"description"`
}

// Genres lists the available seed genres (GET /api/genres).
func (h *Handlers) Genres(w http.ResponseWriter, r *http.Request) {
	session := sessionFromRequest(h.sessions, r)
	if session == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	api := h.newAPI(r.Context(), session.Token)
	genres, err := spotify.New(api).Genres(r.Context())
	h.persistToken(r.Context(), session, api)
	if err != nil {
		log.Printf("Error fetching genres: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch genres", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"genres": genres})
}

// Generate builds a playlist for the session user (POST /api/playlist/generate).
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	session := sessionFromRequest(h.sessions, r)
	if session == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req playlist.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	api := h.newAPI(r.Context(), session.Token)
	result, err := h.playlists.Generate(r.Context(), spotify.New(api), session.UserID, req)
	h.persistToken(r.Context(), session, api)
	if err != nil {
		log.Printf("Error generating playlist for %s: %v", session.UserID, err)
		if isInputError(err) {
			writeError(w, http.StatusBadRequest, "Invalid image or palette", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create playlist", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Analyze derives targets without touching Spotify (POST /api/mood/analyze).
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.playlists.Derive(r.Context(), playlist.GenerateRequest{
		ImageURL:    req.ImageURL,
		ImageBase64: req.ImageBase64,
		PaletteHex:  req.PaletteHex,
	})
	if err != nil {
		if isInputError(err) {
			writeError(w, http.StatusBadRequest, "Invalid image or palette", err)
			return
		}
		log.Printf("Error analyzing image: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to analyze image", err)
		return
	}
	if result == nil {
		writeError(w, http.StatusBadRequest, "imageUrl, imageBase64 or paletteHex is required", nil)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Targets:     result.Targets,
		Analysis:    result.Analysis,
		Mood:        mood.Name(result.Targets),
		Description: mood.Describe(result.Targets),
	})
}

// History lists the session user's recent playlists (GET /api/history).
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	session := sessionFromRequest(h.sessions, r)
	if session == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	if h.history == nil {
		writeError(w, http.StatusNotImplemented, "History is not enabled", nil)
		return
	}

	limit := db.DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	gens, err := h.history.ListForUser(r.Context(), session.UserID, limit)
	if err != nil {
		log.Printf("Error loading history for %s: %v", session.UserID, err)
		writeError(w, http.StatusInternalServerError, "Failed to load history", nil)
		return
	}
	if gens == nil {
		gens = []db.Generation{}
	}

	writeJSON(w, http.StatusOK, map[string][]db.Generation{"generations": gens})
}

// persistToken saves a token oauth2 refreshed during the request.
func (h *Handlers) persistToken(ctx context.Context, session *Session, api *spotifyapi.Client) {
	token, err := api.Token()
	if err != nil || token == nil {
		return
	}
	if session.Token == nil || token.AccessToken != session.Token.AccessToken {
		h.sessions.UpdateToken(ctx, session.ID, token)
	}
}

// isInputError reports whether err was caused by the caller's image or colors.
func isInputError(err error) bool {
	return errors.Is(err, mood.ErrInvalidHex) ||
		errors.Is(err, palette.ErrInvalidBase64) ||
		errors.Is(err, palette.ErrImageTooLarge) ||
		errors.Is(err, palette.ErrEmptyImage) ||
		errors.Is(err, image.ErrFormat)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
