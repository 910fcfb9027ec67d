package handlers

import (
	"net/http"

	"github.com/fieldops/opsconsole/internal/ui/templates"
)

func (h *HandlerService) AdminDashboardPage(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AuthService.Client(w, r).DashboardStats(r.Context())
	if err != nil {
		handlePageError(w, r, err, "load dashboard stats", "Dashboard", "/admin/dashboard")
		return
	}
	renderPage(w, r, "Dashboard", "/admin/dashboard", templates.DashboardPage(*stats))
}
