package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/justestif/go-spotify-mood-playlist/internal/db"
)

const (
	sessionCookieName = "session_id"
	sessionTTL        = 24 * time.Hour

	// DefaultSessionSweepInterval is how often expired sessions are purged.
	DefaultSessionSweepInterval = time.Hour
)

// Session is a logged-in browser.
type Session struct {
	ID        string
	Token     *oauth2.Token
	UserID    string
	UserName  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionManager stores sessions. Get returns nil for unknown or expired IDs.
// DeleteExpired is called periodically by the server.
type SessionManager interface {
	Create(ctx context.Context, token *oauth2.Token, userID, userName string) (*Session, error)
	Get(ctx context.Context, id string) *Session
	Delete(ctx context.Context, id string)
	UpdateToken(ctx context.Context, id string, token *oauth2.Token)
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionStore keeps sessions in memory. It is used when no database is
// configured, so sessions do not survive a restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewSessionStore creates an empty in-memory store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func (s *SessionStore) Create(_ context.Context, token *oauth2.Token, userID, userName string) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &Session{
		ID:        id,
		Token:     token,
		UserID:    userID,
		UserName:  userName,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	copied := *session
	return &copied, nil
}

// Get returns a copy so callers cannot race with UpdateToken.
func (s *SessionStore) Get(_ context.Context, id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || session.expired(s.now()) {
		return nil
	}
	copied := *session
	return &copied
}

func (s *SessionStore) Delete(_ context.Context, id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *SessionStore) UpdateToken(_ context.Context, id string, token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok && !session.expired(s.now()) {
		session.Token = token
	}
}

// DeleteExpired drops every expired session from memory.
func (s *SessionStore) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var n int64
	for id, session := range s.sessions {
		if session.expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len reports how many sessions are held, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// DBSessionStore keeps sessions in PostgreSQL so logins survive restarts.
type DBSessionStore struct {
	sessions *db.SessionRepository
}

// NewDBSessionStore creates a store backed by database.
func NewDBSessionStore(database *db.DB) *DBSessionStore {
	return &DBSessionStore{sessions: database.Sessions()}
}

func (s *DBSessionStore) Create(ctx context.Context, token *oauth2.Token, userID, userName string) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	row := &db.Session{
		ID:           id,
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
	}
	if err := s.sessions.Create(ctx, row, sessionTTL); err != nil {
		return nil, err
	}

	row.UserName = userName
	return fromRow(row, token), nil
}

func (s *DBSessionStore) Get(ctx context.Context, id string) *Session {
	row, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil
	}
	return fromRow(row, &oauth2.Token{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		Expiry:       row.TokenExpiry,
		TokenType:    "Bearer",
	})
}

func (s *DBSessionStore) Delete(ctx context.Context, id string) {
	if err := s.sessions.Delete(ctx, id); err != nil {
		log.Printf("Warning: failed to delete session: %v", err)
	}
}

func (s *DBSessionStore) UpdateToken(ctx context.Context, id string, token *oauth2.Token) {
	if err := s.sessions.UpdateToken(ctx, id, token.AccessToken, token.RefreshToken, token.Expiry); err != nil {
		log.Printf("Warning: failed to persist refreshed token for session: %v", err)
	}
}

func (s *DBSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}

func fromRow(row *db.Session, token *oauth2.Token) *Session {
	return &Session{
		ID:        row.ID,
		Token:     token,
		UserID:    row.UserID,
		UserName:  row.UserName,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}
}

// sweepSessions purges expired sessions every interval until ctx is done.
func sweepSessions(ctx context.Context, sessions SessionManager, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purgeExpired(ctx, sessions)
		}
	}
}

func purgeExpired(ctx context.Context, sessions SessionManager) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := sessions.DeleteExpired(ctx)
	if err != nil {
		log.Printf("Warning: session cleanup failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Removed %d expired sessions", n)
	}
}

// sessionFromRequest looks up the session named by the request cookie.
func sessionFromRequest(sessions SessionManager, r *http.Request) *Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	return sessions.Get(r.Context(), cookie.Value)
}

func setSessionCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

var (
	_ SessionManager = (*SessionStore)(nil)
	_ SessionManager = (*DBSessionStore)(nil)
)
