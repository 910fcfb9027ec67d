package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/fieldops/opsconsole/internal/ui/session"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

// recordedRequest is what the fake backend saw
type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

// fakeBackend answers requests from a route table keyed by "METHOD /path?query"
type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{routes: map[string]func(w http.ResponseWriter, r *http.Request){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.requests = append(fb.requests, recordedRequest{Method: r.Method, Path: r.URL.RequestURI(), Header: r.Header.Clone(), Body: string(body)})
		handler, ok := fb.routes[r.Method+" "+r.URL.RequestURI()]
		fb.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not found."}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) handle(route string, status int, body string) {
	fb.handleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func (fb *fakeBackend) handleFunc(route string, h func(w http.ResponseWriter, r *http.Request)) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[route] = h
}

func (fb *fakeBackend) count(method string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, r := range fb.requests {
		if r.Method == method {
			n++
		}
	}
	return n
}

func (fb *fakeBackend) last() recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.requests[len(fb.requests)-1]
}

// loggedIn returns a client with a populated memory session and a navigator that records its targets
func loggedIn(srv *httptest.Server) (*Client, *session.MemoryStore, *[]string) {
	store := session.NewMemoryStore()
	store.Set(session.KeyUser, `{"id":1,"email":"amy@example.com"}`)
	store.Set(session.KeyUserRole, "admin")
	store.Set(session.KeyAuthToken, "tok-1")

	var navigated []string
	nav := NavigatorFunc(func(path string) { navigated = append(navigated, path) })
	return NewClient(srv.URL, 0).WithSession(store, nav), store, &navigated
}

func TestSessionExpiresOnUnauthorized(t *testing.T) {
	verbs := []struct {
		name string
		call func(c *Client) error
	}{
		{"GET", func(c *Client) error { _, err := c.Get(context.Background(), EndpointJobs); return err }},
		{"POST", func(c *Client) error {
			_, err := c.Post(context.Background(), EndpointJobs, map[string]string{"a": "b"})
			return err
		}},
		{"PATCH", func(c *Client) error { _, err := c.Patch(context.Background(), JobDetail(1), nil); return err }},
		{"DELETE", func(c *Client) error { _, err := c.Delete(context.Background(), UserDelete(1)); return err }},
	}

	for _, v := range verbs {
		t.Run(v.name, func(t *testing.T) {
			fb, srv := newFakeBackend(t)
			for _, route := range []string{"GET " + EndpointJobs, "POST " + EndpointJobs, "PATCH " + JobDetail(1), "DELETE " + UserDelete(1)} {
				fb.handle(route, http.StatusUnauthorized, `{"detail":"Invalid token."}`)
			}
			c, store, navigated := loggedIn(srv)

			err := v.call(c)
			if !errors.Is(err, ErrSessionExpired) {
				t.Fatalf("got %v, want ErrSessionExpired", err)
			}
			if got := UserMessage(err); got != SessionExpiredMessage {
				t.Errorf("user message = %q, want %q", got, SessionExpiredMessage)
			}
			for _, key := range session.Keys {
				if _, ok := store.Get(key); ok {
					t.Errorf("%s still stored after 401", key)
				}
			}
			if len(*navigated) != 1 || (*navigated)[0] != LoginPath {
				t.Errorf("navigated = %v, want [%s]", *navigated, LoginPath)
			}
		})
	}
}

func TestNoContentIsEmptySuccess(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("DELETE "+UserDelete(4), http.StatusNoContent, "")
	c, _, _ := loggedIn(srv)

	body, err := c.Delete(context.Background(), UserDelete(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != nil {
		t.Errorf("body = %q, want nil", body)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantKind   ErrorKind
		wantStatus int
	}{
		{"error field wins", 400, `{"error":"Device not found","detail":"ignored"}`, "Device not found", KindRequestFailed, 400},
		{"detail field", 403, `{"detail":"You do not have permission to perform this action."}`, "You do not have permission to perform this action.", KindRequestFailed, 403},
		{"empty error falls through to detail", 400, `{"error":"","detail":"Bad"}`, "Bad", KindRequestFailed, 400},
		{"non string error falls through", 400, `{"error":{"field":["required"]}}`, "request failed with status 400", KindRequestFailed, 400},
		{"no message", 500, `{}`, "request failed with status 500", KindRequestFailed, 500},
		{"html error page", 502, `<html>Bad Gateway</html>`, "request failed with status 502", KindRequestFailed, 502},
		{"empty body", 404, ``, "request failed with status 404", KindRequestFailed, 404},
		{"conflict", 409, `{"error":"A device with this serial already exists."}`, "A device with this serial already exists.", KindConflict, 409},
		{"precondition failed", 412, ``, "request failed with status 412", KindConflict, 412},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, srv := newFakeBackend(t)
			fb.handle("GET "+EndpointDevices, tt.status, tt.body)
			c, store, navigated := loggedIn(srv)

			_, err := c.Get(context.Background(), EndpointDevices)
			var ce *ClientError
			if !errors.As(err, &ce) {
				t.Fatalf("got %v, want *ClientError", err)
			}
			if ce.UserError() != tt.wantMsg {
				t.Errorf("message = %q, want %q", ce.UserError(), tt.wantMsg)
			}
			if ce.Kind != tt.wantKind || ce.StatusCode != tt.wantStatus {
				t.Errorf("kind/status = %v/%d, want %v/%d", ce.Kind, ce.StatusCode, tt.wantKind, tt.wantStatus)
			}
			if session.Token(store) != "tok-1" || len(*navigated) != 0 {
				t.Error("a non-401 failure must not touch the session")
			}
		})
	}
}

func TestMalformedSuccessResponse(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("GET "+EndpointJobs, http.StatusOK, `[{"id":1},`)
	fb.handle("GET "+EndpointRentals, http.StatusOK, ``)
	c, _, _ := loggedIn(srv)

	for _, path := range []string{EndpointJobs, EndpointRentals} {
		_, err := c.Get(context.Background(), path)
		var ce *ClientError
		if !errors.As(err, &ce) || ce.Kind != KindMalformedResponse {
			t.Errorf("%s: got %v, want a malformed response error", path, err)
		}
	}
}

func TestConnectionError(t *testing.T) {
	_, srv := newFakeBackend(t)
	c, store, _ := loggedIn(srv)
	srv.Close()

	_, err := c.Get(context.Background(), EndpointJobs)
	var ce *ClientError
	if !errors.As(err, &ce) || ce.Kind != KindConnection || ce.StatusCode != 0 {
		t.Fatalf("got %v, want a connection error", err)
	}
	if session.Token(store) == "" {
		t.Error("a connection failure must not purge the session")
	}
}

func TestRequestHeaders(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("GET "+EndpointJobs, http.StatusOK, `[]`)
	fb.handle("POST "+EndpointJobs, http.StatusCreated, `{"id":9}`)
	c, store, _ := loggedIn(srv)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	if _, err := c.Get(ctx, EndpointJobs); err != nil {
		t.Fatal(err)
	}
	got := fb.last()
	if got.Header.Get("Authorization") != "Token tok-1" {
		t.Errorf("Authorization = %q", got.Header.Get("Authorization"))
	}
	if got.Header.Get("X-Request-ID") != "req-42" {
		t.Errorf("X-Request-ID = %q, want req-42", got.Header.Get("X-Request-ID"))
	}
	if got.Header.Get("Accept") != "application/json" || got.Header.Get("Content-Type") != "" {
		t.Errorf("GET headers = %v", got.Header)
	}

	// the token is read on every call
	store.Set(session.KeyAuthToken, "tok-2")
	if _, err := c.Post(context.Background(), EndpointJobs, map[string]string{"customer_name": "Acme"}); err != nil {
		t.Fatal(err)
	}
	got = fb.last()
	if got.Header.Get("Authorization") != "Token tok-2" {
		t.Errorf("Authorization after token change = %q", got.Header.Get("Authorization"))
	}
	if got.Header.Get("Content-Type") != "application/json" || got.Body != `{"customer_name":"Acme"}` {
		t.Errorf("POST content type %q body %q", got.Header.Get("Content-Type"), got.Body)
	}
	if got.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID should be generated when none is inherited")
	}

	session.Purge(store)
	if _, err := c.Get(context.Background(), EndpointJobs); err != nil {
		t.Fatal(err)
	}
	if auth := fb.last().Header.Get("Authorization"); auth != "" {
		t.Errorf("Authorization without token = %q, want none", auth)
	}
}

func TestAcceptJob(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		etag        string
		patch       int
		wantErr     error
		wantPatch   int
		wantIfMatch string
	}{
		{"open job", "open", `"v3"`, http.StatusOK, nil, 1, `"v3"`},
		{"open job without etag", "open", "", http.StatusOK, nil, 1, ""},
		{"already accepted", "in_progress", "", http.StatusOK, ErrConflict, 0, ""},
		{"completed", "completed", "", http.StatusOK, ErrInvalidTransition, 0, ""},
		{"lost the race", "open", `"v3"`, http.StatusPreconditionFailed, ErrConflict, 1, `"v3"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, srv := newFakeBackend(t)
			fb.handleFunc("GET "+JobDetail(5), func(w http.ResponseWriter, r *http.Request) {
				if tt.etag != "" {
					w.Header().Set("ETag", tt.etag)
				}
				w.Write([]byte(`{"id":5,"customer_name":"Acme","status":"` + tt.status + `"}`))
			})
			fb.handle("PATCH "+JobDetail(5), tt.patch, `{"id":5,"customer_name":"Acme","status":"in_progress"}`)
			c, _, _ := loggedIn(srv)

			job, err := c.AcceptJob(context.Background(), 5)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == ErrConflict && UserMessage(err) != ConflictMessage {
				t.Errorf("message = %q, want %q", UserMessage(err), ConflictMessage)
			}
			if got := fb.count(http.MethodPatch); got != tt.wantPatch {
				t.Fatalf("PATCH requests = %d, want %d", got, tt.wantPatch)
			}
			if tt.wantPatch > 0 {
				last := fb.last()
				if last.Header.Get("If-Match") != tt.wantIfMatch {
					t.Errorf("If-Match = %q, want %q", last.Header.Get("If-Match"), tt.wantIfMatch)
				}
				if last.Body != `{"status":"in_progress"}` {
					t.Errorf("PATCH body = %s", last.Body)
				}
			}
			if err == nil && job.Status != types.JobInProgress {
				t.Errorf("status = %s, want in_progress", job.Status)
			}
		})
	}
}

func TestSubmitReport(t *testing.T) {
	report := types.NewReport{Job: 3, CompanyName: "Acme", TimeTaken: "2h", EquipmentUsed: "drill", WorkDescription: "fixed"}

	t.Run("both steps succeed", func(t *testing.T) {
		fb, srv := newFakeBackend(t)
		fb.handle("POST "+EndpointReports, http.StatusCreated, `{"id":11,"job":3}`)
		fb.handle("PATCH "+JobDetail(3), http.StatusOK, `{"id":3,"status":"completed"}`)
		c, _, _ := loggedIn(srv)

		saved, err := c.SubmitReport(context.Background(), report, types.JobInProgress)
		if err != nil || saved.ID != 11 {
			t.Fatalf("SubmitReport = %+v, %v", saved, err)
		}
	})

	t.Run("job update fails", func(t *testing.T) {
		fb, srv := newFakeBackend(t)
		fb.handle("POST "+EndpointReports, http.StatusCreated, `{"id":11,"job":3}`)
		fb.handle("PATCH "+JobDetail(3), http.StatusInternalServerError, `{"error":"database unavailable"}`)
		c, _, _ := loggedIn(srv)

		saved, err := c.SubmitReport(context.Background(), report, types.JobInProgress)
		var partial *PartialError
		if !errors.As(err, &partial) {
			t.Fatalf("got %v, want *PartialError", err)
		}
		if saved == nil || saved.ID != 11 {
			t.Errorf("saved report should still be returned, got %+v", saved)
		}
		if msg := UserMessage(err); !strings.Contains(msg, "Report #11 was saved") || !strings.Contains(msg, "database unavailable") {
			t.Errorf("user message = %q", msg)
		}
	})

	t.Run("illegal transition sends nothing", func(t *testing.T) {
		fb, srv := newFakeBackend(t)
		c, _, _ := loggedIn(srv)

		_, err := c.SubmitReport(context.Background(), report, types.JobOpen)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("got %v, want ErrInvalidTransition", err)
		}
		if len(fb.requests) != 0 {
			t.Errorf("%d requests were sent", len(fb.requests))
		}
	})
}

func TestLogin(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handleFunc("POST "+EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"token":"new-token","user":{"id":2,"email":"bo@example.com","username":"bo","role":"employee","is_staff":false}}`))
	})

	store := session.NewMemoryStore()
	navigated := 0
	c := NewClient(srv.URL, 0).WithSession(store, NavigatorFunc(func(string) { navigated++ }))

	_, err := c.Login(context.Background(), "bo@example.com", "wrong")
	if err == nil || UserMessage(err) != "Invalid credentials" {
		t.Errorf("bad password: got %v", err)
	}
	if navigated != 0 {
		t.Error("failed login must not navigate")
	}

	if _, err := c.Login(context.Background(), "bo@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	s, err := session.Load(store)
	if err != nil || s.Token != "new-token" || s.Role != types.RoleEmployee {
		t.Errorf("session after login = %+v, %v", s, err)
	}
	if auth := fb.last().Header.Get("Authorization"); auth != "" {
		t.Errorf("login sent Authorization %q", auth)
	}

	if err := c.Logout(); err != nil {
		t.Fatal(err)
	}
	if _, err := session.Load(store); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("after logout: %v", err)
	}
}

func TestCreateRentalRequiresKnownDevice(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("GET "+DeviceBySerial("SN-404"), http.StatusOK, `[]`)
	fb.handle("GET "+DeviceBySerial("SN-1"), http.StatusOK, `[{"id":1,"serial_no":"SN-1","availability":"available"}]`)
	fb.handle("POST "+EndpointRentals, http.StatusCreated, `{"id":8,"device_serial":"SN-1","status":"active","security_deposit":"150.00"}`)
	c, _, _ := loggedIn(srv)

	rental := types.NewRental{CustomerName: "Cid", PhoneNumber: "555", DeviceSerial: "SN-404", FromDate: "2026-01-01", ToDate: "2026-01-05", RentalDays: 4, SecurityDeposit: "150.00"}
	if _, err := c.CreateRental(context.Background(), rental); err == nil || !strings.Contains(UserMessage(err), "SN-404 not found") {
		t.Errorf("unknown serial: got %v", err)
	}
	if fb.count(http.MethodPost) != 0 {
		t.Error("no rental should be posted for an unknown device")
	}

	rental.DeviceSerial = "SN-1"
	created, err := c.CreateRental(context.Background(), rental)
	if err != nil || created.ID != 8 || created.SecurityDeposit.String() != "150.00" {
		t.Errorf("CreateRental = %+v, %v", created, err)
	}
}

func TestReturnRental(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("POST "+RentalReturn(8), http.StatusOK, `{"id":8,"device_serial":"SN-1","status":"returned"}`)
	c, _, _ := loggedIn(srv)

	if _, err := c.ReturnRental(context.Background(), 8, types.RentalReturned); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("returning a returned rental: got %v", err)
	}
	returned, err := c.ReturnRental(context.Background(), 8, types.RentalActive)
	if err != nil || returned.Status != types.RentalReturned {
		t.Fatalf("ReturnRental = %+v, %v", returned, err)
	}
	if body := fb.last().Body; body != `{}` {
		t.Errorf("return body = %s, want {}", body)
	}
}

func TestListsAcceptPaginatedResponses(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("GET "+EndpointUsers, http.StatusOK, `{"count":2,"next":null,"results":[{"id":1,"email":"a@example.com"},{"id":2,"email":"b@example.com","is_active":false}]}`)
	fb.handle("GET "+EndpointDevices, http.StatusOK, `[]`)
	c, _, _ := loggedIn(srv)

	users, err := c.Users(context.Background())
	if err != nil || len(users) != 2 || users[1].Active() {
		t.Errorf("Users = %+v, %v", users, err)
	}
	devices, err := c.Devices(context.Background())
	if err != nil || devices == nil || len(devices) != 0 {
		t.Errorf("Devices = %#v, %v", devices, err)
	}
}

func TestEndpoints(t *testing.T) {
	tests := map[string]string{
		JobDetail(12):            "/api/jobs/12/",
		RentalReturn(3):          "/api/rentals/3/return/",
		UserDelete(9):            "/api/users/9/delete/",
		DeviceBySerial("SN 1&2"): "/api/devices/?serial_no=SN+1%262",
		ReportsByJob(4):          "/api/reports/?job=4",
		DeviceDetail(2):          "/api/devices/2/",
		ReportDetail(5):          "/api/reports/5/",
		RentalDetail(6):          "/api/rentals/6/",
	}
	for got, want := range tests {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestCompleteJob(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("PATCH "+JobDetail(4), http.StatusNoContent, "")
	c, _, _ := loggedIn(srv)

	if _, err := c.CompleteJob(context.Background(), 4, types.JobOpen); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completing an open job: got %v", err)
	}
	if fb.count(http.MethodPatch) != 0 {
		t.Fatal("an illegal transition must not reach the backend")
	}

	job, err := c.CompleteJob(context.Background(), 4, types.JobInProgress)
	if err != nil || job.ID != 4 || job.Status != types.JobCompleted {
		t.Fatalf("CompleteJob = %+v, %v", job, err)
	}
	if body := fb.last().Body; body != `{"status":"completed"}` {
		t.Errorf("patch body = %s", body)
	}
}

func TestDevices(t *testing.T) {
	fb, srv := newFakeBackend(t)
	// a backend that ignores the serial filter
	fb.handle("GET "+DeviceBySerial("SN-2"), http.StatusOK, `[{"id":1,"serial_no":"SN-1"},{"id":2,"serial_no":"SN-2"}]`)
	fb.handle("POST "+EndpointDevices, http.StatusCreated, `{"id":3,"device_name":"Drill","serial_no":"SN-3","model":"D1","availability":"available"}`)
	c, _, _ := loggedIn(srv)

	devices, err := c.DevicesBySerial(context.Background(), "SN-2")
	if err != nil || len(devices) != 1 || devices[0].ID != 2 {
		t.Errorf("DevicesBySerial = %+v, %v", devices, err)
	}

	if _, err := c.CreateDevice(context.Background(), types.NewDevice{DeviceName: "Drill"}); err == nil {
		t.Error("expected a validation error for a device without serial")
	}
	if fb.count(http.MethodPost) != 0 {
		t.Fatal("invalid devices must not be posted")
	}

	created, err := c.CreateDevice(context.Background(), types.NewDevice{DeviceName: "Drill", SerialNo: "SN-3", Model: "D1"})
	if err != nil || created.ID != 3 {
		t.Fatalf("CreateDevice = %+v, %v", created, err)
	}
	if body := fb.last().Body; !strings.Contains(body, `"availability":"available"`) {
		t.Errorf("new devices default to available, body = %s", body)
	}
}

func TestUsers(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("DELETE "+UserDelete(5), http.StatusNoContent, "")
	fb.handle("POST "+EndpointRegister, http.StatusCreated, `{"message":"User created","user":{"id":9,"email":"new@example.com","role":"employee"}}`)
	fb.handle("GET "+EndpointProfile, http.StatusOK, `{"id":1,"email":"amy@example.com","role":"admin"}`)
	c, _, _ := loggedIn(srv)

	if err := c.DeactivateUser(context.Background(), 5); err != nil {
		t.Errorf("DeactivateUser: %v", err)
	}

	tests := []struct {
		name    string
		req     types.RegisterRequest
		wantErr bool
	}{
		{name: "missing password", req: types.RegisterRequest{Email: "new@example.com"}, wantErr: true},
		{name: "unknown role", req: types.RegisterRequest{Email: "new@example.com", Password: "pw", Role: "owner"}, wantErr: true},
		{name: "defaults to employee", req: types.RegisterRequest{Email: "new@example.com", Password: "pw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Register(context.Background(), tt.req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil || res.User.ID != 9 {
				t.Fatalf("Register = %+v, %v", res, err)
			}
			if body := fb.last().Body; !strings.Contains(body, `"role":"employee"`) {
				t.Errorf("register body = %s", body)
			}
		})
	}
	if n := fb.count(http.MethodPost); n != 1 {
		t.Errorf("%d registrations sent, want 1", n)
	}

	user, err := c.Profile(context.Background())
	if err != nil || user.Role != types.RoleAdmin {
		t.Errorf("Profile = %+v, %v", user, err)
	}
}

func TestDashboardStats(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("GET "+EndpointDashboardStats, http.StatusOK, `{"jobs":{"total":3,"open":1,"in_progress":1,"completed":1},"users":{"total":2,"admins":1,"employees":1}}`)
	c, _, _ := loggedIn(srv)

	stats, err := c.DashboardStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Jobs.InProgress != 1 || stats.Users.Employees != 1 || stats.Rentals.Total != 0 {
		t.Errorf("DashboardStats = %+v", stats)
	}
}

func TestConflictKeepsServerMessage(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("POST "+EndpointRegister, http.StatusConflict, `{"error":"A user with this email already exists."}`)
	c, _, _ := loggedIn(srv)

	_, err := c.Register(context.Background(), types.RegisterRequest{Email: "amy@example.com", Password: "pw"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
	if got := UserMessage(err); got != "A user with this email already exists." {
		t.Errorf("message = %q, want the backend's message", got)
	}
}

func TestNoContentOnTypedCalls(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.handle("GET "+EndpointJobs, http.StatusNoContent, "")
	fb.handle("GET "+EndpointProfile, http.StatusNoContent, "")
	c, _, _ := loggedIn(srv)

	jobs, err := c.Jobs(context.Background())
	if err != nil || jobs == nil || len(jobs) != 0 {
		t.Errorf("Jobs on 204 = %#v, %v, want an empty list", jobs, err)
	}

	_, err = c.Profile(context.Background())
	var ce *ClientError
	if !errors.As(err, &ce) || ce.Kind != KindMalformedResponse {
		t.Fatalf("Profile on 204: got %v, want a malformed response error", err)
	}
	if !strings.Contains(ce.LogMessage, "empty response body") {
		t.Errorf("log message = %q", ce.LogMessage)
	}
}
