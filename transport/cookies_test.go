package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()

	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestWriteSessionSetsBothCookies(t *testing.T) {
	adapter := NewAdapter(Config{Secure: true})

	rec := httptest.NewRecorder()
	adapter.WriteSession(rec, "at-value", "rt-value", 30*time.Minute, 168*time.Hour)

	cookies := rec.Result().Cookies()
	access := findCookie(t, cookies, "ga_access")
	refresh := findCookie(t, cookies, "ga_refresh")

	if access.Value != "at-value" || refresh.Value != "rt-value" {
		t.Fatalf("values: %q %q", access.Value, refresh.Value)
	}
	for _, c := range []*http.Cookie{access, refresh} {
		if !c.HttpOnly {
			t.Errorf("cookie %q must be HttpOnly", c.Name)
		}
		if !c.Secure {
			t.Errorf("cookie %q must be Secure", c.Name)
		}
		if c.SameSite != http.SameSiteLaxMode {
			t.Errorf("cookie %q SameSite = %d", c.Name, c.SameSite)
		}
	}
	if access.MaxAge != int((30 * time.Minute).Seconds()) {
		t.Fatalf("access MaxAge = %d", access.MaxAge)
	}
	if refresh.MaxAge != int((168 * time.Hour).Seconds()) {
		t.Fatalf("refresh MaxAge = %d", refresh.MaxAge)
	}
}

func TestReadBackWrittenCookies(t *testing.T) {
	adapter := NewAdapter(Config{})

	rec := httptest.NewRecorder()
	adapter.WriteSession(rec, "at-value", "rt-value", time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	access, ok := adapter.ReadAccess(req)
	if !ok || access != "at-value" {
		t.Fatalf("ReadAccess = %q, %v", access, ok)
	}
	refresh, ok := adapter.ReadRefresh(req)
	if !ok || refresh != "rt-value" {
		t.Fatalf("ReadRefresh = %q, %v", refresh, ok)
	}
}

func TestReadMissingCookie(t *testing.T) {
	adapter := NewAdapter(Config{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := adapter.ReadAccess(req); ok {
		t.Fatal("missing cookie reported as present")
	}
}

func TestClearSessionExpiresCookies(t *testing.T) {
	adapter := NewAdapter(Config{})

	rec := httptest.NewRecorder()
	adapter.ClearSession(rec)

	cookies := rec.Result().Cookies()
	for _, name := range []string{"ga_access", "ga_refresh"} {
		c := findCookie(t, cookies, name)
		if c.Value != "" {
			t.Errorf("cookie %q still carries a value", name)
		}
		if c.MaxAge != -1 {
			t.Errorf("cookie %q MaxAge = %d, want -1", name, c.MaxAge)
		}
	}
}

func TestCustomNamesAndPath(t *testing.T) {
	adapter := NewAdapter(Config{
		AccessName:  "sess_at",
		RefreshName: "sess_rt",
		Path:        "/auth",
	})

	rec := httptest.NewRecorder()
	adapter.WriteSession(rec, "a", "r", time.Minute, time.Hour)

	cookies := rec.Result().Cookies()
	access := findCookie(t, cookies, "sess_at")
	if access.Path != "/auth" {
		t.Fatalf("path = %q", access.Path)
	}
	findCookie(t, cookies, "sess_rt")
}
