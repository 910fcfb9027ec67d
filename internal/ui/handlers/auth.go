package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fieldops/opsconsole/internal/logger"
	"github.com/fieldops/opsconsole/internal/ui/auth"
	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/session"
	"github.com/fieldops/opsconsole/internal/ui/templates"
)

// HandleHome sends signed-in users to the landing page for their role and everyone else to login
func (h *HandlerService) HandleHome(w http.ResponseWriter, r *http.Request) {
	s, err := session.Load(h.AuthService.Store(w, r))
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, auth.HomePath(string(s.Role)), http.StatusSeeOther)
}

func (h *HandlerService) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if s, err := session.Load(h.AuthService.Store(w, r)); err == nil {
		http.Redirect(w, r, auth.HomePath(string(s.Role)), http.StatusSeeOther)
		return
	}
	render(w, r, templates.BaseLayout(templates.Page{Title: "Sign in"}, templates.LoginPage("", "")), "login page")
}

// HandleLoginPost authenticates with the backend and stores the session in cookies
func (h *HandlerService) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	reqLogger := logger.ContextRequestLogger(r.Context())

	store := h.AuthService.Store(w, r)
	res, err := h.ApiClient.WithSession(store, auth.NewNavigator(w, r)).Login(r.Context(), email, password)
	if err != nil {
		reqLogger.Info("Authentication failed", slog.String("error", err.Error()))
		msg := client.UserMessage(err)
		if r.Header.Get("HX-Request") == "true" {
			render(w, r, templates.ErrorAlert(msg), "login error")
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		render(w, r, templates.BaseLayout(templates.Page{Title: "Sign in"}, templates.LoginPage(email, msg)), "login page")
		return
	}

	// Login successful - add the user to the final request log
	logger.ContextWithLogAttrs(r.Context(),
		slog.Int("user_id", res.User.ID),
		slog.String("role", string(res.User.Role)),
	)

	s, err := session.Load(store)
	if err != nil {
		reqLogger.Error("Session not stored after login", slog.String("error", err.Error()))
		render(w, r, templates.ErrorAlert("An error occurred. Please try again."), "login error")
		return
	}
	auth.Redirect(w, r, auth.HomePath(string(s.Role)))
}

func (h *HandlerService) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Client(w, r).Logout(); err != nil && !errors.Is(err, session.ErrNoSession) {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("Failed to clear session", slog.String("error", err.Error()))
	}
	auth.Redirect(w, r, "/login")
}

func (h *HandlerService) AccessDeniedPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusForbidden)
	renderPage(w, r, "Access denied", "", templates.AccessDeniedPage())
}
