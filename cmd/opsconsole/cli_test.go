package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeAPI answers "METHOD /path" routes and records the Authorization header of every request
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]func(w http.ResponseWriter, r *http.Request)
	tokens map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{
		routes: map[string]func(w http.ResponseWriter, r *http.Request){},
		tokens: map[string]string{},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.RequestURI()
		api.mu.Lock()
		api.tokens[route] = r.Header.Get("Authorization")
		h, ok := api.routes[route]
		api.mu.Unlock()
		if !ok {
			http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) handle(route string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[route] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (a *fakeAPI) token(route string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	tok, ok := a.tokens[route]
	return tok, ok
}

// execute runs one opsconsole invocation against apiURL with the session kept in sessionFile
func execute(t *testing.T, apiURL, sessionFile string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--api", apiURL, "--session-file", sessionFile, "--no-color"}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

const (
	loginJSON = `{"token":"tok-1","user":{"id":7,"email":"sam@example.com","username":"sam","role":"employee"}}`
	jobsJSON  = `[
		{"id":1,"customer_name":"Ada Works","phone_number":"555","location":"Leeds","issue":"Boiler","work_date":"2026-03-01","priority":"high","status":"open"},
		{"id":2,"customer_name":"Bell Farm","phone_number":"556","location":"York","issue":"Pump","work_date":"2026-03-02","priority":"low","status":"in_progress"}
	]`
)

func TestLoginListAcceptLogout(t *testing.T) {
	api, srv := newFakeAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.db")

	api.handle("POST /api/auth/login/", http.StatusOK, loginJSON)
	api.handle("GET /api/jobs/", http.StatusOK, jobsJSON)
	api.handle("GET /api/jobs/1/", http.StatusOK, `{"id":1,"customer_name":"Ada Works","status":"open","priority":"high"}`)
	api.handle("PATCH /api/jobs/1/", http.StatusOK, `{"id":1,"customer_name":"Ada Works","status":"in_progress","priority":"high"}`)

	out, _, err := execute(t, srv.URL, sessionFile, "login", "--email", "sam@example.com", "--password", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Signed in as sam@example.com (employee)") {
		t.Errorf("login output = %q", out)
	}

	out, _, err = execute(t, srv.URL, sessionFile, "jobs", "list", "--status", "open")
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	if !strings.Contains(out, "Ada Works") || strings.Contains(out, "Bell Farm") {
		t.Errorf("jobs list --status open output:\n%s", out)
	}
	if tok, _ := api.token("GET /api/jobs/"); tok != "Token tok-1" {
		t.Errorf("Authorization = %q, want the stored token", tok)
	}

	out, _, err = execute(t, srv.URL, sessionFile, "jobs", "accept", "1")
	if err != nil {
		t.Fatalf("jobs accept: %v", err)
	}
	if !strings.Contains(out, "Job #1: accept done") {
		t.Errorf("jobs accept output = %q", out)
	}

	_, _, err = execute(t, srv.URL, sessionFile, "jobs", "accept", "2")
	if err == nil || !strings.Contains(err.Error(), "cannot accept job 2") {
		t.Errorf("accepting an in-progress job: err = %v", err)
	}

	if _, _, err := execute(t, srv.URL, sessionFile, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, _, err = execute(t, srv.URL, sessionFile, "whoami")
	if err == nil || !strings.Contains(err.Error(), "not signed in") {
		t.Errorf("whoami after logout: err = %v", err)
	}
}

func TestExpiredSession(t *testing.T) {
	api, srv := newFakeAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.db")

	api.handle("POST /api/auth/login/", http.StatusOK, loginJSON)
	api.handle("GET /api/devices/", http.StatusUnauthorized, `{"detail":"Invalid token."}`)

	if _, _, err := execute(t, srv.URL, sessionFile, "login", "-e", "sam@example.com", "-p", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, stderr, err := execute(t, srv.URL, sessionFile, "devices", "list")
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
	if !strings.Contains(stderr, "Your session has expired") {
		t.Errorf("stderr = %q, want the expiry notice", stderr)
	}

	// the expired session is purged, so the next command is anonymous
	_, _, err = execute(t, srv.URL, sessionFile, "devices", "list")
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
	if tok, _ := api.token("GET /api/devices/"); tok != "" {
		t.Errorf("Authorization after expiry = %q, want none", tok)
	}
}

func TestLoginReadsPasswordFromStdin(t *testing.T) {
	api, srv := newFakeAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.db")
	api.handle("POST /api/auth/login/", http.StatusOK, loginJSON)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--api", srv.URL, "--session-file", sessionFile, "login", "--email", "sam@example.com"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("secret\n"))
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out.String(), "Signed in as") {
		t.Errorf("output = %q", out.String())
	}
}

func TestListFlags(t *testing.T) {
	api, srv := newFakeAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.db")
	api.handle("GET /api/jobs/", http.StatusOK, jobsJSON)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr string
	}{
		{
			name: "search",
			args: []string{"jobs", "list", "-q", "york"},
			want: []string{"Bell Farm"}, notWant: []string{"Ada Works"},
		},
		{
			name: "one per page",
			args: []string{"jobs", "list", "--per-page", "1", "--page", "2"},
			want: []string{"Bell Farm", "page 2 of 2"}, notWant: []string{"Ada Works"},
		},
		{
			name: "cards",
			args: []string{"jobs", "list", "--cards"},
			want: []string{"[1]", "Customer: Ada Works", "more, use --all"},
		},
		{
			name:    "unsortable column",
			args:    []string{"jobs", "list", "--sort", "issue"},
			wantErr: "cannot sort by",
		},
		{
			name:    "bad id",
			args:    []string{"jobs", "accept", "abc"},
			wantErr: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, srv.URL, sessionFile, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(errorMessage(err), tt.wantErr) {
					t.Fatalf("err = %v, want one containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestStats(t *testing.T) {
	api, srv := newFakeAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.db")
	api.handle("GET /api/dashboard/stats/", http.StatusOK,
		`{"jobs":{"total":5,"open":2,"in_progress":1,"completed":2},"rentals":{"total":3,"active":1,"completed":2},
		"devices":{"total":4,"available":3,"rented":1},"users":{"total":6,"admins":1,"employees":5}}`)

	out, _, err := execute(t, srv.URL, sessionFile, "stats")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"open 2", "active 1", "rented 1", "employees 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestAPIFlagIsValidated(t *testing.T) {
	sessionFile := filepath.Join(t.TempDir(), "session.db")

	tests := []struct {
		name    string
		api     string
		wantErr string
	}{
		{"wrong scheme", "ftp://backend:8000", "must use http or https"},
		{"no host", "http://", "does not include a host"},
		{"not a url", "http://bad host:80", "not a valid URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.api, sessionFile, "jobs", "list")
			if err == nil || !strings.Contains(err.Error(), "invalid --api value") || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want one containing %q", err, tt.wantErr)
			}
		})
	}
}
