package config

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/jub0bs/cors"
)

// Config holds the console settings. The web UI uses all of it; the CLI only needs the API and session settings.
type Config struct {
	Environment    string        `env:"ENVIRONMENT,default=dev"`
	Host           string        `env:"HOST,default=0.0.0.0"`
	Port           int           `env:"PORT,default=3000"`
	LogLevel       string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	APIBaseURL     string        `env:"API_BASE_URL,default=http://localhost:8000"`
	APITimeout     time.Duration `env:"API_TIMEOUT,default=10s"`
	ItemsPerPage   int           `env:"ITEMS_PER_PAGE,default=10"`
	RateLimitRPS   int32         `env:"RATE_LIMIT_RPS,default=100"`
	RateLimitBurst int32         `env:"RATE_LIMIT_BURST,default=20"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS,separator=|"`
	SessionFile    string        `env:"SESSION_FILE"` // CLI session store, defaults to ~/.opsconsole/session.db
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"perf":    true,
	"prod":    true,
	"staging": true,
}

const (
	// Operational timeouts
	ServerShutdownTimeout = 10 * time.Second

	// session cookie lifetime in the browser
	SessionCookieMaxAge = 12 * 60 * 60

	CORSMaxAgeInSeconds = 86400 // 24 hours
)

func NewConfig() (*Config, error) {
	var cfg Config

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// IsProd reports whether cookies must be marked Secure
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// Addr is the listen address of the web UI
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the configuration again, for callers that override values after NewConfig
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, perf, staging, prod", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", cfg.IdleTimeout)
	}
	if cfg.APITimeout <= 0 {
		return fmt.Errorf("API timeout must be positive, got %v", cfg.APITimeout)
	}

	if cfg.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL cannot be empty")
	}
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("API_BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL must use http or https: %s", cfg.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API_BASE_URL does not include a host: %s", cfg.APIBaseURL)
	}
	// endpoint paths start with a slash
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if cfg.ItemsPerPage < 1 {
		return fmt.Errorf("items per page must be at least 1, got %d", cfg.ItemsPerPage)
	}

	if cfg.RateLimitRPS < 0 || cfg.RateLimitBurst < 0 {
		return fmt.Errorf("rate limits cannot be negative")
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst == 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be set when RATE_LIMIT_RPS is enabled")
	}

	for _, origin := range cfg.AllowedOrigins {
		if strings.TrimSpace(origin) == "*" && cfg.IsProd() {
			return fmt.Errorf("ALLOWED_ORIGINS must not be set to '*' in %v", cfg.Environment)
		}
	}

	if cfg.SessionFile == "" {
		cfg.SessionFile = DefaultSessionFile()
	}

	return nil
}

// DefaultSessionFile is ~/.opsconsole/session.db, or a file in the working directory when there is no home
func DefaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".opsconsole", "session.db")
	}
	return filepath.Join(home, ".opsconsole", "session.db")
}

// NewCORS returns the CORS middleware for the /ui-api fragment endpoints, or nil when no origins are configured
// (htmx requests from the console's own pages are same-origin).
func NewCORS(cfg *Config) (*cors.Middleware, error) {
	if len(cfg.AllowedOrigins) == 0 {
		return nil, nil
	}

	origins := make([]string, len(cfg.AllowedOrigins))
	for i, origin := range cfg.AllowedOrigins {
		origins[i] = strings.TrimSpace(origin)
	}

	m, err := cors.NewMiddleware(cors.Config{
		Origins: origins,
		Methods: []string{
			http.MethodGet,
			http.MethodPost,
		},
		RequestHeaders: []string{
			"Content-Type",
			"HX-Request",
			"HX-Current-URL",
			"HX-Target",
			"HX-Trigger",
		},
		MaxAgeInSeconds: CORSMaxAgeInSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create CORS middleware: %w", err)
	}
	return m, nil
}
