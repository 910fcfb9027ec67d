package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fieldops/opsconsole/internal/logger"
	"github.com/fieldops/opsconsole/internal/ui/auth"
	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/config"
	"github.com/fieldops/opsconsole/internal/ui/handlers"
	"github.com/fieldops/opsconsole/internal/ui/templates"
	"github.com/fieldops/opsconsole/internal/ui/types"
	"github.com/fieldops/opsconsole/internal/version"
)

type Server struct {
	router      *chi.Mux
	config      *config.Config
	logger      *slog.Logger
	apiClient   *client.Client
	authService *auth.AuthService
}

// NewServer creates the web UI server. The API client is shared by every request; each request binds it
// to the browser's session cookies.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	apiClient := client.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	s := &Server{
		router:      chi.NewRouter(),
		config:      cfg,
		logger:      logger,
		apiClient:   apiClient,
		authService: auth.NewAuthService(apiClient, cfg.Environment),
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.RegisterRoutes(s.router)
	return s, nil
}

// Handler returns the router, e.g. for httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// RegisterRoutes registers the UI routes
func (s *Server) RegisterRoutes(router *chi.Mux) {
	h := &handlers.HandlerService{
		AuthService:  s.authService,
		ApiClient:    s.apiClient,
		Environment:  s.config.Environment,
		ItemsPerPage: s.config.ItemsPerPage,
	}

	// Static assets (no auth required)
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(templates.Static())))

	router.Get("/health/live", s.handleLiveness)

	// Public routes (no auth required)
	router.Get("/login", h.HandleLogin)
	router.Post("/login", h.HandleLoginPost)
	router.Get("/access-denied", h.AccessDeniedPage)

	// redirects to the role's landing page if signed in, login if not
	router.Get("/", h.HandleHome)

	router.Group(func(r chi.Router) {
		r.Use(s.authService.RequireAuth)

		r.Post("/logout", h.HandleLogout)
		r.Get("/ui-api/empty", h.Empty)
		r.Post("/ui-api/clear-alerts", h.ClearAlerts)
	})

	// Admin routes
	router.Group(func(r chi.Router) {
		r.Use(s.authService.RequireAuth)
		r.Use(s.authService.RequireRole(types.RoleAdmin))

		r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		})
		r.Get("/admin/dashboard", h.AdminDashboardPage)
		r.Get("/admin/jobs/new", h.PostJobPage)
		r.Get("/admin/jobs/ongoing", h.TablePage("ongoing-jobs"))
		r.Get("/admin/jobs/history", h.TablePage("job-history"))
		r.Get("/admin/jobs/completed", h.TablePage("completed-jobs"))
		r.Get("/admin/rentals/new", h.NewRentalPage)
		r.Get("/admin/rentals/ongoing", h.TablePage("ongoing-rentals"))
		r.Get("/admin/rentals/history", h.TablePage("rental-history"))
		r.Get("/admin/devices", h.TablePage("devices"))
		r.Get("/admin/devices/new", h.AddDevicePage)
		r.Get("/admin/users", h.TablePage("users"))
		r.Get("/admin/users/new", h.RegisterUserPage)

		// UI API endpoints (used when rendering ui components)
		r.Route("/ui-api/admin", func(r chi.Router) {
			registerTableRoutes(r, h)
		})
		r.Post("/ui-api/jobs", h.CreateJob)
		r.Post("/ui-api/rentals", h.CreateRental)
		r.Post("/ui-api/devices", h.CreateDevice)
		r.Post("/ui-api/users", h.RegisterUser)
	})

	// Employee routes
	router.Group(func(r chi.Router) {
		r.Use(s.authService.RequireAuth)
		r.Use(s.authService.RequireRole(types.RoleEmployee))

		r.Get("/employee/jobs", h.TablePage("available-jobs"))
		r.Get("/employee/jobs/ongoing", h.TablePage("my-jobs"))
		r.Get("/employee/jobs/completed", h.TablePage("recently-completed"))
		r.Get("/employee/report", h.SubmitReportPage)

		r.Route("/ui-api/employee", func(r chi.Router) {
			registerTableRoutes(r, h)
		})
		r.Post("/ui-api/reports", h.SubmitReport)
	})
}

// registerTableRoutes adds the fragment routes every table needs: the table itself, the row inspector and row actions
func registerTableRoutes(r chi.Router, h *handlers.HandlerService) {
	r.Get("/tables/{table}/{tab}", h.TableFragment)
	r.Get("/tables/{table}/{tab}/rows/{key}", h.TableRow)
	r.Post("/tables/{table}/{tab}/actions/{action}/{key}", h.TableAction)
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "ok %s\n", version.Get().Version)
}

func (s *Server) setupMiddleware() error {
	corsMiddleware, err := config.NewCORS(s.config)
	if err != nil {
		return err
	}

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(SecurityHeaders(s.config.Environment))
	s.router.Use(RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
	if corsMiddleware != nil {
		// preflight requests carry no cookies, so CORS runs ahead of the auth checks
		s.router.Use(PathPrefix("/ui-api/", CORS(corsMiddleware)))
	}
	s.router.Use(chimiddleware.Timeout(60 * time.Second))
	return nil
}

// Start runs the server until ctx is cancelled, then shuts it down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := s.config.Addr()

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("UI server listening",
			slog.String("address", addr),
			slog.String("api", s.config.APIBaseURL),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down UI server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
