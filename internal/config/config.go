// Package config loads process configuration from the environment.
// An optional .env file in the working directory is read first; variables
// already set in the environment take precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// OrphanPolicy controls what happens to recipe likes when a member is deleted.
type OrphanPolicy string

const (
	// TolerateOrphans leaves the deleted member's id in recipe likedBy lists.
	TolerateOrphans OrphanPolicy = "tolerate"
	// CascadeLikes removes the deleted member's id from every recipe.
	CascadeLikes OrphanPolicy = "cascade"
)

// Config is the resolved process configuration.
type Config struct {
	DBPath          string
	ListenAddr      string
	AnalyzeURL      string
	AnalyzeTimeout  time.Duration
	UseMockAnalyzer bool
	APISecret       string
	TokenTTL        time.Duration
	OrphanPolicy    OrphanPolicy
	LogLevel        string
	LogFormat       string
}

// AuthEnabled reports whether the HTTP API requires bearer tokens.
func (c *Config) AuthEnabled() bool {
	return c.APISecret != ""
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// LoadFile reads the named env file and then the environment.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:     getEnv("DB_PATH", "./data/cooknote.db"),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		AnalyzeURL: getEnv("ANALYZE_URL", ""),
		APISecret:  os.Getenv("API_SECRET"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.AnalyzeTimeout, err = getDuration("ANALYZE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.UseMockAnalyzer, err = getBool("USE_MOCK_ANALYZER", false); err != nil {
		return nil, err
	}

	switch p := OrphanPolicy(strings.ToLower(getEnv("ORPHAN_POLICY", string(TolerateOrphans)))); p {
	case TolerateOrphans, CascadeLikes:
		cfg.OrphanPolicy = p
	default:
		return nil, fmt.Errorf("invalid ORPHAN_POLICY %q: want %q or %q", p, TolerateOrphans, CascadeLikes)
	}

	// Without a service URL the mock is the only analyzer available.
	if cfg.AnalyzeURL == "" {
		cfg.UseMockAnalyzer = true
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
