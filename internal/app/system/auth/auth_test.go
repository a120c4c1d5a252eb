package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/credithub/internal/app/system/auth"
	"go.uber.org/zap"
)

type stubFetcher struct {
	users map[string]*auth.SessionUser
	calls int
}

func (f *stubFetcher) FetchUser(_ context.Context, userID string) *auth.SessionUser {
	f.calls++
	return f.users[userID]
}

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

// echoUser writes the current user's ID, or "anon".
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		w.Write([]byte(u.ID))
		return
	}
	w.Write([]byte("anon"))
})

func TestNewSessionManager_EmptyKey(t *testing.T) {
	_, err := auth.NewSessionManager("", "s", "", time.Hour, false, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestLoadSessionUser_NoCookie_Anonymous(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetUserFetcher(&stubFetcher{})

	rec := httptest.NewRecorder()
	sm.LoadSessionUser(echoUser).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Body.String() != "anon" {
		t.Errorf("expected anonymous request, got %q", rec.Body.String())
	}
}

func TestLoadSessionUser_SignedIn_FetchesUser(t *testing.T) {
	sm := newTestSessionManager(t)
	fetcher := &stubFetcher{users: map[string]*auth.SessionUser{
		"u1": {ID: "u1", Name: "Ops Person", Committees: []string{"operations"}},
	}}
	sm.SetUserFetcher(fetcher)

	// Sign in to obtain a cookie.
	signRec := httptest.NewRecorder()
	if err := sm.SignIn(signRec, httptest.NewRequest("POST", "/", nil), "u1"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := signRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	sm.LoadSessionUser(echoUser).ServeHTTP(rec, req)

	if rec.Body.String() != "u1" {
		t.Errorf("expected user u1, got %q", rec.Body.String())
	}
	if fetcher.calls != 1 {
		t.Errorf("expected 1 fetch, got %d", fetcher.calls)
	}
}

func TestLoadSessionUser_UnknownUser_Anonymous(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetUserFetcher(&stubFetcher{users: map[string]*auth.SessionUser{}})

	signRec := httptest.NewRecorder()
	if err := sm.SignIn(signRec, httptest.NewRequest("POST", "/", nil), "gone"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range signRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	sm.LoadSessionUser(echoUser).ServeHTTP(rec, req)

	if rec.Body.String() != "anon" {
		t.Errorf("expected anonymous for deleted user, got %q", rec.Body.String())
	}
}

func TestLoadSessionUser_TamperedCookie_Anonymous(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetUserFetcher(&stubFetcher{})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "not-a-valid-cookie"})
	rec := httptest.NewRecorder()
	sm.LoadSessionUser(echoUser).ServeHTTP(rec, req)

	if rec.Body.String() != "anon" {
		t.Errorf("expected anonymous for tampered cookie, got %q", rec.Body.String())
	}
}

func TestLoadSessionUser_RotatedKey_Anonymous(t *testing.T) {
	old, err := auth.NewSessionManager("old-session-key-that-was-32-chars-long", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	signRec := httptest.NewRecorder()
	if err := old.SignIn(signRec, httptest.NewRequest("POST", "/", nil), "u1"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	sm := newTestSessionManager(t)
	fetcher := &stubFetcher{users: map[string]*auth.SessionUser{"u1": {ID: "u1"}}}
	sm.SetUserFetcher(fetcher)

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range signRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	sm.LoadSessionUser(echoUser).ServeHTTP(rec, req)

	if rec.Body.String() != "anon" {
		t.Errorf("expected anonymous after key rotation, got %q", rec.Body.String())
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, want 0", fetcher.calls)
	}
}

func TestWantsHTML(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if !auth.WantsHTML(req) {
		t.Error("expected browser Accept header to want HTML")
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "application/json")
	if auth.WantsHTML(req) {
		t.Error("expected JSON Accept header not to want HTML")
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("HX-Request", "true")
	if !auth.WantsHTML(req) {
		t.Error("expected HTMX request to want HTML")
	}
}
