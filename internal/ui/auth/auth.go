package auth

import (
	"net/http"

	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/config"
	"github.com/fieldops/opsconsole/internal/ui/session"
)

// AuthService binds browser requests to API sessions held in cookies
type AuthService struct {
	apiClient   *client.Client
	environment string
}

// NewAuthService creates a new UI authentication service
func NewAuthService(apiClient *client.Client, environment string) *AuthService {
	return &AuthService{
		apiClient:   apiClient,
		environment: environment,
	}
}

// Store returns the session store for the request. RequireAuth puts one in the request context so every
// reader in the request sees the same pending cookie writes; outside authenticated routes a new store is made.
func (a *AuthService) Store(w http.ResponseWriter, r *http.Request) session.Store {
	if store, ok := ContextStore(r.Context()); ok {
		return store
	}
	return a.newStore(w, r)
}

func (a *AuthService) newStore(w http.ResponseWriter, r *http.Request) session.Store {
	return session.NewCookieStore(w, r, a.environment == "prod", config.SessionCookieMaxAge)
}

// Client returns an API client bound to the request's session. When the backend reports the
// session expired the client clears the cookies and redirects the browser to the login page, so
// handlers must not write a response after an error matching client.ErrSessionExpired.
func (a *AuthService) Client(w http.ResponseWriter, r *http.Request) *client.Client {
	return a.apiClient.WithSession(a.Store(w, r), NewNavigator(w, r))
}

// navigator redirects the browser, using HX-Redirect for htmx requests
type navigator struct {
	w http.ResponseWriter
	r *http.Request
}

// NewNavigator returns the client.Navigator for one request
func NewNavigator(w http.ResponseWriter, r *http.Request) client.Navigator {
	return navigator{w: w, r: r}
}

func (n navigator) Navigate(path string) {
	Redirect(n.w, n.r, path)
}

// Redirect works for both htmx and direct requests
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusOK)
	} else {
		http.Redirect(w, r, path, http.StatusSeeOther)
	}
}

// Helper method for redirecting to login
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	Redirect(w, r, client.LoginPath)
}

// redirectToAccessDenied redirects to access denied page for both HTMX and direct requests
func redirectToAccessDenied(w http.ResponseWriter, r *http.Request) {
	Redirect(w, r, "/access-denied")
}

// HomePath is the landing page for a role
func HomePath(role string) string {
	if role == "admin" {
		return "/admin/dashboard"
	}
	return "/employee/jobs"
}
