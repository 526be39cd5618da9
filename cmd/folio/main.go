package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/internal/config"
	"github.com/naveenspark/folio/internal/mockapi"
	"github.com/naveenspark/folio/internal/session"
	"github.com/naveenspark/folio/internal/tui"
	"github.com/naveenspark/folio/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg := config.FromEnv()

	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "--version", "version", "-v":
		fmt.Println("folio " + version)
		return nil
	case "help", "--help", "-h":
		printHelp()
		return nil
	case "logout":
		return runLogout()
	case "", "login":
		return runTUI(cfg, cmd == "login")
	default:
		return fmt.Errorf("unknown command %q (try: folio help)", cmd)
	}
}

// setupLogging sends the standard logger to ~/.folio/debug.log when debug
// is on. Otherwise log output is discarded so it cannot corrupt the TUI.
func setupLogging(cfg config.Config) (io.Closer, error) {
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	path, err := debugLogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "folio")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return f, nil
}

func debugLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".folio", "debug.log"), nil
}

// newStore opens the session file store. A missing home directory leaves
// the session in memory only.
func newStore() *session.Store {
	path, err := session.DefaultPath()
	if err != nil {
		log.Printf("session: %v", err)
		return nil
	}
	return session.NewStore(path)
}

// buildDeps wires the session, optional mock backend and API client.
func buildDeps(cfg config.Config, store *session.Store) tui.Deps {
	logger := log.Default()
	mgr := session.NewManager(store, logger)

	opts := []client.Option{
		client.WithTokenSource(mgr.Token),
		client.WithLogger(logger),
	}
	if cfg.MockFallback() {
		opts = append(opts, client.WithFallback(mockapi.New(mockapi.WithAuthorName(mgr.UserName))))
	}
	c := client.New(cfg.APIBaseURL, opts...)

	return tui.Deps{
		Client:       c,
		Session:      mgr,
		BaseURL:      c.BaseURL(),
		PageSize:     cfg.PageSize,
		MockFallback: c.FallbackEnabled(),
	}
}

func runTUI(cfg config.Config, login bool) error {
	closer, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	log.Printf("folio %s starting: api=%q mock_fallback=%v", version, cfg.APIBaseURL, cfg.MockFallback())
	if cfg.APIBaseURL == "" && !cfg.MockFallback() {
		return fmt.Errorf("no backend configured: set FOLIO_API_BASE or enable FOLIO_FEATURE_FLAGS=%s", config.FlagMockAPI)
	}

	deps := buildDeps(cfg, newStore())
	app := tui.NewApp(deps)
	if login {
		app = tui.NewLoginApp(deps)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout() error {
	path, err := session.DefaultPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := session.NewStore(path).Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	printFarewell()
	if os.Getenv(session.TokenEnv) != "" {
		fmt.Printf("Note: %s is still set and will keep you signed in.\n", session.TokenEnv)
	}
	return nil
}
