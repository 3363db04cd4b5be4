// Package session keeps the active username of a browser in a persistent
// cookie. It is identification by convention only: the cookie is not signed
// and anyone can claim any username.
package session

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/notes-app/internal/transport/middleware"
	"github.com/heartmarshall/notes-app/pkg/ctxutil"
)

// CookieName is the well-known key the username is stored under.
const CookieName = "username"

const maxAge = 365 * 24 * time.Hour

// Manager reads and writes the session cookie.
type Manager struct {
	secure bool
}

// NewManager creates a Manager. secure sets the cookie's Secure flag.
func NewManager(secure bool) *Manager {
	return &Manager{secure: secure}
}

// Load returns middleware that injects the stored username into the request
// context. Requests without a valid cookie pass through unchanged.
func (m *Manager) Load() middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username, ok := readCookie(r); ok {
				r = r.WithContext(ctxutil.WithUsername(r.Context(), username))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Set stores username for a year.
func (m *Manager) Set(w http.ResponseWriter, username string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(username),
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the stored username.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func readCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	username, err := url.QueryUnescape(c.Value)
	if err != nil {
		return "", false
	}
	username = strings.TrimSpace(username)
	return username, username != ""
}
