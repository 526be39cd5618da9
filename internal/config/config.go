// Package config gathers folio's environment settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/naveenspark/folio/pkg/domain"
)

// FlagMockAPI enables the mock backend when the real one is unreachable.
const FlagMockAPI = "mock_api"

// Config is the resolved runtime configuration.
type Config struct {
	APIBaseURL   string
	FeatureFlags map[string]bool
	Experiments  bool
	Debug        bool
	PageSize     int
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv reads configuration from the environment.
func FromEnv() Config {
	return Config{
		APIBaseURL:   apiBaseURL(),
		FeatureFlags: parseFlags(os.Getenv("FOLIO_FEATURE_FLAGS")),
		Experiments:  parseBool(os.Getenv("FOLIO_EXPERIMENTS_ENABLED"), false),
		Debug:        parseBool(os.Getenv("FOLIO_DEBUG"), false),
		PageSize:     parseInt(os.Getenv("FOLIO_PAGE_SIZE"), domain.DefaultPageSize),
	}
}

// MockFallback reports whether the mock backend may stand in for an
// unreachable server.
func (c Config) MockFallback() bool {
	return c.FeatureFlags[FlagMockAPI] || c.Experiments
}

// apiBaseURL prefers FOLIO_API_BASE, then FOLIO_BACKEND_URL, then "".
func apiBaseURL() string {
	for _, key := range []string{"FOLIO_API_BASE", "FOLIO_BACKEND_URL"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return strings.TrimRight(v, "/")
		}
	}
	return ""
}

// parseFlags splits a comma-separated flag list, dropping blanks.
func parseFlags(raw string) map[string]bool {
	flags := make(map[string]bool)
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			flags[f] = true
		}
	}
	return flags
}

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y", "on":
		return true
	}
	return false
}

func parseInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
