package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldops/opsconsole/internal/logger"
	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/config"
	"github.com/fieldops/opsconsole/internal/ui/session"
	"github.com/fieldops/opsconsole/internal/version"
)

// cli holds what the terminal commands share: configuration, the session file and an API client bound to it
type cli struct {
	verbose     bool
	noColor     bool
	apiBaseURL  string
	sessionFile string

	cfg    *config.Config
	logger *slog.Logger
	store  *session.FileStore
	client *client.Client
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "opsconsole",
		Short:         "Service operations console",
		Long:          `Post and track repair jobs, equipment rentals, devices and users from the terminal, or serve the web console.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = version.Get().String()

	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log API requests to stderr")
	cmd.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "never highlight output")
	cmd.PersistentFlags().StringVar(&c.apiBaseURL, "api", "", "backend base URL (overrides API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&c.sessionFile, "session-file", "", "session file (overrides SESSION_FILE)")

	cmd.AddCommand(
		newServeCmd(),
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newStatsCmd(c),
		newJobsCmd(c),
		newRentalsCmd(c),
		newDevicesCmd(c),
		newUsersCmd(c),
		newReportsCmd(c),
	)
	return cmd
}

// open loads the configuration and the session file. Commands call it before talking to the backend.
func (c *cli) open(cmd *cobra.Command) error {
	if c.client != nil {
		return nil
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	if c.apiBaseURL != "" {
		cfg.APIBaseURL = c.apiBaseURL
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --api value: %w", err)
		}
	}
	if c.sessionFile != "" {
		cfg.SessionFile = c.sessionFile
	}
	c.cfg = cfg
	c.logger = logger.InitCLILogger(c.verbose)

	store, err := session.OpenFileStore(cfg.SessionFile)
	if err != nil {
		return err
	}
	c.store = store

	stderr := cmd.ErrOrStderr()
	c.client = client.NewClient(cfg.APIBaseURL, cfg.APITimeout).WithSession(store, client.NavigatorFunc(func(path string) {
		if path == client.LoginPath {
			fmt.Fprintln(stderr, "Your session has expired. Run `opsconsole login` to sign in again.")
		}
	}))

	c.logger.Debug("using backend", slog.String("api", cfg.APIBaseURL), slog.String("session_file", cfg.SessionFile))
	return nil
}

func (c *cli) close() {
	if c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil {
		c.logger.Warn("could not close the session file", slog.String("error", err.Error()))
	}
	c.store = nil
	c.client = nil
}

// run opens the session, calls fn and closes the session file again. The context carries the CLI logger
// so API calls log through it.
func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	if err := c.open(cmd); err != nil {
		return err
	}
	defer c.close()

	ctx := logger.ContextWithRequestLogger(cmd.Context(), c.logger)
	ctx, cancel := context.WithTimeout(ctx, 2*c.cfg.APITimeout+5*time.Second)
	defer cancel()
	return fn(ctx)
}

// requireSession fails early with a helpful message when nobody is signed in
func (c *cli) requireSession() (*session.Session, error) {
	s, err := session.Load(c.store)
	if err != nil {
		return nil, fmt.Errorf("not signed in, run `opsconsole login` first: %w", err)
	}
	return s, nil
}

// color reports whether output to w should be highlighted: only on a terminal, and never with --no-color or NO_COLOR
func (c *cli) color(w io.Writer) bool {
	if c.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
