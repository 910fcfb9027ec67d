package session

import (
	"encoding/base64"
	"net/http"
)

// Cookie names used by the web UI
const (
	UserCookieName      = "opsconsole_user"
	UserRoleCookieName  = "opsconsole_user_role"
	AuthTokenCookieName = "opsconsole_auth_token"
)

var cookieNames = map[string]string{
	KeyUser:      UserCookieName,
	KeyUserRole:  UserRoleCookieName,
	KeyAuthToken: AuthTokenCookieName,
}

// CookieStore is a Store over the cookies of one HTTP exchange: reads come from the request,
// writes become Set-Cookie headers on the response. Values written during the request are visible
// to later reads in the same request.
//
// A CookieStore must not outlive its request and is not safe for concurrent use.
type CookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
	maxAge int

	// pending holds values set (or cleared, as nil) during this request
	pending map[string]*string
}

// NewCookieStore returns the store for one request. secure marks cookies Secure (set in prod);
// maxAge is the cookie lifetime in seconds, 0 for a browser-session cookie.
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool, maxAge int) *CookieStore {
	return &CookieStore{
		w:       w,
		r:       r,
		secure:  secure,
		maxAge:  maxAge,
		pending: make(map[string]*string),
	}
}

func (c *CookieStore) Get(key string) (string, bool) {
	if v, ok := c.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	name, ok := cookieNames[key]
	if !ok {
		return "", false
	}
	cookie, err := c.r.Cookie(name)
	if err != nil {
		return "", false
	}
	// values are base64 encoded to avoid cookie encoding issues with JSON
	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

func (c *CookieStore) Set(key, value string) error {
	name, ok := cookieNames[key]
	if !ok {
		return &UnknownKeyError{Key: key}
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(value)),
		Path:     "/",
		MaxAge:   c.maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
	c.pending[key] = &value
	return nil
}

// Clear expires the cookies in the browser
func (c *CookieStore) Clear(keys ...string) error {
	for _, key := range keys {
		name, ok := cookieNames[key]
		if !ok {
			continue
		}
		http.SetCookie(c.w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   c.secure,
			SameSite: http.SameSiteStrictMode,
		})
		c.pending[key] = nil
	}
	return nil
}

// UnknownKeyError is returned when a store only supports the session keys
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return "unknown session key " + e.Key
}
