package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fieldops/opsconsole/internal/ui/config"
	"github.com/fieldops/opsconsole/internal/ui/session"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		Environment:  "test",
		Host:         "127.0.0.1",
		Port:         0,
		APIBaseURL:   apiURL,
		APITimeout:   time.Second,
		ItemsPerPage: 10,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	s, err := NewServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s.Handler()
}

func sessionCookies(t *testing.T, role types.Role) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	store := session.NewCookieStore(w, httptest.NewRequest(http.MethodPost, "/login", nil), false, 0)
	err := session.Save(store, types.LoginResponse{
		Token: "tok",
		User:  types.User{ID: 1, Email: "ann@example.com", Role: role},
	})
	if err != nil {
		t.Fatal(err)
	}
	return w.Result().Cookies()
}

func get(h http.Handler, target string, cookies []*http.Cookie, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/jobs/":
			_, _ = io.WriteString(w, `[{"id":1,"customer_name":"Ann","status":"open","priority":"high"}]`)
		case "/api/dashboard/stats/":
			_, _ = io.WriteString(w, `{"jobs":{"total":1}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	h := newTestServer(t, testConfig(backend.URL))
	admin := sessionCookies(t, types.RoleAdmin)
	employee := sessionCookies(t, types.RoleEmployee)

	tests := []struct {
		name         string
		target       string
		cookies      []*http.Cookie
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{"liveness", "/health/live", nil, http.StatusOK, "", "ok "},
		{"stylesheet", "/static/app.css", nil, http.StatusOK, "", ".dt-table"},
		{"login page", "/login", nil, http.StatusOK, "", "Sign in"},
		{"home signed out", "/", nil, http.StatusSeeOther, "/login", ""},
		{"home admin", "/", admin, http.StatusSeeOther, "/admin/dashboard", ""},
		{"home employee", "/", employee, http.StatusSeeOther, "/employee/jobs", ""},
		{"admin page signed out", "/admin/devices", nil, http.StatusSeeOther, "/login", ""},
		{"admin page as employee", "/admin/devices", employee, http.StatusSeeOther, "/access-denied", ""},
		{"employee page as admin", "/employee/jobs", admin, http.StatusSeeOther, "/access-denied", ""},
		{"dashboard", "/admin/dashboard", admin, http.StatusOK, "", "Dashboard"},
		{"employee table page", "/employee/jobs", employee, http.StatusOK, "", `hx-get="/ui-api/employee/tables/available-jobs/all"`},
		{"employee table fragment", "/ui-api/employee/tables/available-jobs/high", employee, http.StatusOK, "", "Accept"},
		{"admin fragment as employee", "/ui-api/admin/tables/devices/all", employee, http.StatusSeeOther, "/access-denied", ""},
		{"access denied", "/access-denied", nil, http.StatusForbidden, "", "Access denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(h, tt.target, tt.cookies, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		environment string
		wantHSTS    bool
	}{
		{"dev", false},
		{"staging", true},
		{"prod", true},
	}
	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			h := SecurityHeaders(tt.environment)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			rec := get(h, "/", nil, nil)

			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q", got)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q", got)
			}
			if got := rec.Header().Get("Content-Security-Policy"); !strings.Contains(got, "https://unpkg.com") {
				t.Errorf("Content-Security-Policy = %q", got)
			}
			if got := rec.Header().Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("HSTS set = %v, want %v", got, tt.wantHSTS)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	limited := RateLimit(1, 1)(next)
	if rec := get(limited, "/", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	rec := get(limited, "/", nil, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}

	unlimited := RateLimit(0, 0)(next)
	for range 5 {
		if rec := get(unlimited, "/", nil, nil); rec.Code != http.StatusOK {
			t.Fatalf("disabled limiter refused a request: %d", rec.Code)
		}
	}
}

func TestCORSOnFragments(t *testing.T) {
	cfg := testConfig("http://backend.invalid")
	cfg.AllowedOrigins = []string{"https://portal.example.com"}
	h := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/ui-api/admin/tables/devices/all", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://portal.example.com" {
		t.Errorf("preflight Access-Control-Allow-Origin = %q", got)
	}

	// pages are not part of the fragment API
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("page Access-Control-Allow-Origin = %q", got)
	}
}
