package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/fieldops/opsconsole/internal/logger"
	"github.com/fieldops/opsconsole/internal/ui/auth"
	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/templates"
)

type HandlerService struct {
	AuthService  *auth.AuthService
	ApiClient    *client.Client
	Environment  string
	ItemsPerPage int
}

// render writes a component, logging failures against what was being rendered
func render(w http.ResponseWriter, r *http.Request, c templ.Component, what string) {
	if err := c.Render(r.Context(), w); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("Failed to render "+what, slog.String("error", err.Error()))
	}
}

// renderPage renders body inside the layout for the signed-in user
func renderPage(w http.ResponseWriter, r *http.Request, title, active string, body templ.Component) {
	render(w, r, pageLayout(r, title, active, body), title+" page")
}

func pageLayout(r *http.Request, title, active string, body templ.Component) templ.Component {
	page := templates.Page{Title: title, Active: active}
	if s, ok := auth.ContextSession(r.Context()); ok {
		page.Role = s.Role
		page.Email = s.User.Email
	}
	return templates.BaseLayout(page, body)
}

// handleError logs err and renders alert for it. When the session has expired the client has already
// redirected the browser, so nothing is written. It reports whether the response was left untouched.
func handleError(w http.ResponseWriter, r *http.Request, err error, while string, alert func(msg string) templ.Component) bool {
	reqLogger := logger.ContextRequestLogger(r.Context())
	if errors.Is(err, client.ErrSessionExpired) {
		reqLogger.Info("Session expired", slog.String("while", while))
		return true
	}

	reqLogger.Error("Failed to "+while, slog.String("error", err.Error()))
	render(w, r, alert(client.UserMessage(err)), "error alert")
	return false
}

// handlePageError renders the page with only an error alert and a button reloading it
func handlePageError(w http.ResponseWriter, r *http.Request, err error, while, title, active string) {
	handleError(w, r, err, while, func(msg string) templ.Component {
		return pageLayout(r, title, active, templates.Join(
			templates.PageHeader(title, ""),
			templates.ErrorAlertWithRetry(msg, &templates.Retry{
				URL:    r.URL.RequestURI(),
				Method: "get",
				Target: "body",
				Swap:   "innerHTML",
			}),
		))
	})
}

// handleAlertError renders err as a plain error alert
func handleAlertError(w http.ResponseWriter, r *http.Request, err error, while string) {
	handleError(w, r, err, while, templates.ErrorAlert)
}

func (h *HandlerService) ClearAlerts(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.ClearAlerts(), "ClearAlerts")
}

// Empty answers with no content, for controls that clear a panel
func (h *HandlerService) Empty(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
