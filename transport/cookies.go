package transport

import (
	"net/http"
	"time"
)

const (
	defaultAccessCookie  = "ga_access"
	defaultRefreshCookie = "ga_refresh"
)

// Config defines a public type used by guestauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	AccessName  string
	RefreshName string
	Path        string
	Domain      string
	Secure      bool
	SameSite    http.SameSite
}

// Adapter defines a public type used by guestauth APIs.
//
// Adapter instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Adapter struct {
	config Config
}

// NewAdapter describes the newadapter operation and its observable behavior.
//
// NewAdapter may return an error when input validation, dependency calls, or security checks fail.
// NewAdapter does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewAdapter(cfg Config) *Adapter {
	if cfg.AccessName == "" {
		cfg.AccessName = defaultAccessCookie
	}
	if cfg.RefreshName == "" {
		cfg.RefreshName = defaultRefreshCookie
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	if cfg.SameSite == 0 {
		cfg.SameSite = http.SameSiteLaxMode
	}

	return &Adapter{config: cfg}
}

// ReadAccess describes the readaccess operation and its observable behavior.
//
// ReadAccess may return an error when input validation, dependency calls, or security checks fail.
// ReadAccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Adapter) ReadAccess(r *http.Request) (string, bool) {
	return a.readCookie(r, a.config.AccessName)
}

// ReadRefresh describes the readrefresh operation and its observable behavior.
//
// ReadRefresh may return an error when input validation, dependency calls, or security checks fail.
// ReadRefresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Adapter) ReadRefresh(r *http.Request) (string, bool) {
	return a.readCookie(r, a.config.RefreshName)
}

func (a *Adapter) readCookie(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// WriteSession describes the writesession operation and its observable behavior.
//
// WriteSession may return an error when input validation, dependency calls, or security checks fail.
// WriteSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Adapter) WriteSession(w http.ResponseWriter, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, a.cookie(a.config.AccessName, accessToken, int(accessTTL.Seconds())))
	http.SetCookie(w, a.cookie(a.config.RefreshName, refreshToken, int(refreshTTL.Seconds())))
}

// WriteAccess describes the writeaccess operation and its observable behavior.
//
// WriteAccess may return an error when input validation, dependency calls, or security checks fail.
// WriteAccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Adapter) WriteAccess(w http.ResponseWriter, accessToken string, accessTTL time.Duration) {
	http.SetCookie(w, a.cookie(a.config.AccessName, accessToken, int(accessTTL.Seconds())))
}

// ClearSession describes the clearsession operation and its observable behavior.
//
// ClearSession may return an error when input validation, dependency calls, or security checks fail.
// ClearSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Adapter) ClearSession(w http.ResponseWriter) {
	access := a.cookie(a.config.AccessName, "", -1)
	refresh := a.cookie(a.config.RefreshName, "", -1)
	http.SetCookie(w, access)
	http.SetCookie(w, refresh)
}

func (a *Adapter) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     a.config.Path,
		Domain:   a.config.Domain,
		MaxAge:   maxAge,
		Secure:   a.config.Secure,
		HttpOnly: true,
		SameSite: a.config.SameSite,
	}
}
