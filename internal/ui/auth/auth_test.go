package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/session"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

// sessionCookies logs in through a cookie store and returns the cookies the browser would send back
func sessionCookies(t *testing.T, role types.Role) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	store := session.NewCookieStore(w, httptest.NewRequest(http.MethodPost, "/login", nil), false, 0)
	err := session.Save(store, types.LoginResponse{
		Token: "tok",
		User:  types.User{ID: 3, Email: "amy@example.com", Role: role},
	})
	if err != nil {
		t.Fatal(err)
	}
	return w.Result().Cookies()
}

func TestRequireAuth(t *testing.T) {
	a := NewAuthService(client.NewClient("http://backend.invalid", 0), "dev")

	tests := []struct {
		name         string
		cookies      []*http.Cookie
		htmx         bool
		wantStatus   int
		wantLocation string
		wantHXRedir  string
		wantNext     bool
	}{
		{"no session", nil, false, http.StatusSeeOther, "/login", "", false},
		{"no session htmx", nil, true, http.StatusOK, "", "/login", false},
		{"logged in", sessionCookies(t, types.RoleAdmin), false, http.StatusOK, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				s, ok := ContextSession(r.Context())
				if !ok || s.Token != "tok" || s.User.Email != "amy@example.com" {
					t.Errorf("session in context = %+v, %v", s, ok)
				}
				if _, ok := ContextStore(r.Context()); !ok {
					t.Error("store missing from context")
				}
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/jobs", nil)
			for _, c := range tt.cookies {
				req.AddCookie(c)
			}
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			rr := httptest.NewRecorder()
			a.RequireAuth(next).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if got := rr.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
			if got := rr.Header().Get("HX-Redirect"); got != tt.wantHXRedir {
				t.Errorf("HX-Redirect = %q, want %q", got, tt.wantHXRedir)
			}
			if called != tt.wantNext {
				t.Errorf("next called = %v, want %v", called, tt.wantNext)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	a := NewAuthService(client.NewClient("http://backend.invalid", 0), "dev")

	tests := []struct {
		name       string
		role       types.Role
		required   types.Role
		wantStatus int
		wantNext   bool
	}{
		{"admin on admin page", types.RoleAdmin, types.RoleAdmin, http.StatusOK, true},
		{"employee on admin page", types.RoleEmployee, types.RoleAdmin, http.StatusSeeOther, false},
		{"employee on employee page", types.RoleEmployee, types.RoleEmployee, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := a.RequireAuth(a.RequireRole(tt.required)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for _, c := range sessionCookies(t, tt.role) {
				req.AddCookie(c)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus || called != tt.wantNext {
				t.Errorf("status %d next %v, want %d %v", rr.Code, called, tt.wantStatus, tt.wantNext)
			}
			if !tt.wantNext && rr.Header().Get("Location") != "/access-denied" {
				t.Errorf("Location = %q", rr.Header().Get("Location"))
			}
		})
	}
}

// A 401 from the backend inside a handler must clear the cookies and redirect htmx requests to login
func TestClientSessionExpiry(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	a := NewAuthService(client.NewClient(backend.URL, 0), "prod")
	var callErr error
	handler := a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, callErr = a.Client(w, r).Get(r.Context(), client.EndpointJobs)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ui-api/jobs", nil)
	req.Header.Set("HX-Request", "true")
	for _, c := range sessionCookies(t, types.RoleAdmin) {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !errors.Is(callErr, client.ErrSessionExpired) {
		t.Fatalf("got %v, want ErrSessionExpired", callErr)
	}
	if rr.Header().Get("HX-Redirect") != "/login" {
		t.Errorf("HX-Redirect = %q", rr.Header().Get("HX-Redirect"))
	}
	expired := 0
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 && c.Secure {
			expired++
		}
	}
	if expired != len(session.Keys) {
		t.Errorf("expired %d cookies, want %d", expired, len(session.Keys))
	}
}

func TestHomePath(t *testing.T) {
	if HomePath("admin") != "/admin/dashboard" || HomePath("employee") != "/employee/jobs" {
		t.Error("unexpected home paths")
	}
}
