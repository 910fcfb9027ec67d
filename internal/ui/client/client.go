// Package client is used by the UI handlers and CLI commands to call the field operations backend API.
//
// Every call carries the auth token held in the injected session store. The client translates failed
// responses into ClientError values carrying a user-friendly message (rendered to the end user) and
// a technical message for logging (see errors.go).
//
// A 401 from any call ends the session: the store is purged, the Navigator is sent to the login
// page and the call fails with ErrSessionExpired.
package client

import (
	"net/http"
	"time"

	"github.com/fieldops/opsconsole/internal/ui/session"
)

const DefaultTimeout = 10 * time.Second

// LoginPath is where the Navigator is sent when the session expires
const LoginPath = "/login"

// Navigator moves the user to another page of the application
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a plain function to the Navigator interface
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Client handles communication with the backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	nav        Navigator
}

// NewClient returns a client without a session. Use WithSession before making authenticated calls.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithSession returns a copy of the client bound to a session store and navigator.
// The copy shares the underlying http.Client, so binding one per request is cheap.
func (c *Client) WithSession(store session.Store, nav Navigator) *Client {
	bound := *c
	bound.store = store
	bound.nav = nav
	return &bound
}

// BaseURL returns the backend URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// expireSession purges the session and navigates to the login page
func (c *Client) expireSession() error {
	var err error
	if c.store != nil {
		err = session.Purge(c.store)
	}
	if c.nav != nil {
		c.nav.Navigate(LoginPath)
	}
	return err
}
