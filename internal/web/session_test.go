package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

// newClockedStore returns a memory store whose clock the test controls.
func newClockedStore(start time.Time) (*SessionStore, *time.Time) {
	now := start
	store := NewSessionStore()
	store.now = func() time.Time { return now }
	return store, &now
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session, err := store.Create(ctx, &oauth2.Token{AccessToken: "a1"}, "user-1", "Tester")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(session.ID) != 64 {
		t.Errorf("session ID length = %d, want 64", len(session.ID))
	}
	if got := session.ExpiresAt.Sub(session.CreatedAt); got != sessionTTL {
		t.Errorf("lifetime = %v, want %v", got, sessionTTL)
	}

	got := store.Get(ctx, session.ID)
	if got == nil || got.UserID != "user-1" || got.UserName != "Tester" {
		t.Fatalf("Get() = %+v", got)
	}

	store.UpdateToken(ctx, session.ID, &oauth2.Token{AccessToken: "a2"})
	if got := store.Get(ctx, session.ID); got.Token.AccessToken != "a2" {
		t.Errorf("token = %q after update, want a2", got.Token.AccessToken)
	}

	store.Delete(ctx, session.ID)
	if store.Get(ctx, session.ID) != nil {
		t.Error("Get() after Delete() returned a session")
	}
}

func TestSessionStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session, _ := store.Create(ctx, &oauth2.Token{}, "user-1", "Tester")
	session.UserID = "someone-else"

	if got := store.Get(ctx, session.ID); got.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", got.UserID)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, now := newClockedStore(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	session, _ := store.Create(ctx, &oauth2.Token{AccessToken: "a1"}, "user-1", "Tester")

	*now = now.Add(sessionTTL)
	if store.Get(ctx, session.ID) != nil {
		t.Error("expired session returned")
	}

	store.UpdateToken(ctx, session.ID, &oauth2.Token{AccessToken: "a2"})
	*now = now.Add(-time.Minute)
	if got := store.Get(ctx, session.ID); got == nil || got.Token.AccessToken != "a1" {
		t.Errorf("Get() = %+v, want the original token", got)
	}
}

func TestSessionStoreDeleteExpired(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store, now := newClockedStore(start)

	old, _ := store.Create(ctx, &oauth2.Token{}, "user-1", "Old")
	*now = start.Add(sessionTTL / 2)
	fresh, _ := store.Create(ctx, &oauth2.Token{}, "user-2", "Fresh")

	tests := []struct {
		name    string
		at      time.Time
		removed int64
		left    int
	}{
		{name: "nothing expired", at: start.Add(time.Hour), removed: 0, left: 2},
		{name: "first expires", at: start.Add(sessionTTL), removed: 1, left: 1},
		{name: "already swept", at: start.Add(sessionTTL + time.Minute), removed: 0, left: 1},
		{name: "second expires", at: start.Add(sessionTTL + sessionTTL/2), removed: 1, left: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*now = tt.at

			n, err := store.DeleteExpired(ctx)
			if err != nil {
				t.Fatalf("DeleteExpired() error = %v", err)
			}
			if n != tt.removed {
				t.Errorf("DeleteExpired() = %d, want %d", n, tt.removed)
			}
			if got := store.Len(); got != tt.left {
				t.Errorf("Len() = %d, want %d", got, tt.left)
			}
		})
	}

	if store.Get(ctx, old.ID) != nil || store.Get(ctx, fresh.ID) != nil {
		t.Error("swept sessions are still readable")
	}
}

// countingSessions signals every DeleteExpired call.
type countingSessions struct {
	SessionManager

	err   error
	swept chan struct{}
}

func (c *countingSessions) DeleteExpired(context.Context) (int64, error) {
	select {
	case c.swept <- struct{}{}:
	default:
	}
	return 1, c.err
}

func TestSweepSessions(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "success"},
		{name: "store error keeps sweeping", err: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &countingSessions{err: tt.err, swept: make(chan struct{})}
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				sweepSessions(ctx, sessions, time.Millisecond)
				close(done)
			}()

			for i := 0; i < 2; i++ {
				select {
				case <-sessions.swept:
				case <-time.After(2 * time.Second):
					t.Fatalf("sweep %d did not run", i+1)
				}
			}

			cancel()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("sweepSessions did not stop after cancel")
			}
		})
	}
}

func TestSessionCookies(t *testing.T) {
	store := NewSessionStore()
	session, _ := store.Create(context.Background(), &oauth2.Token{}, "user-1", "Tester")

	rec := httptest.NewRecorder()
	setSessionCookie(rec, session)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge <= 0 || !cookies[0].HttpOnly {
		t.Fatalf("setSessionCookie() cookies = %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	if got := sessionFromRequest(store, req); got == nil || got.ID != session.ID {
		t.Errorf("sessionFromRequest() = %+v, want session %s", got, session.ID)
	}

	rec = httptest.NewRecorder()
	clearSessionCookie(rec)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("clearSessionCookie() cookies = %+v", cookies)
	}

	if sessionFromRequest(store, httptest.NewRequest(http.MethodGet, "/", nil)) != nil {
		t.Error("sessionFromRequest() without cookie returned a session")
	}
}
