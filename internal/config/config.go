package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Config holds folio's runtime settings.
type Config struct {
	APIURL         string
	UserAgent      string
	RequestTimeout time.Duration
	SearchDebounce time.Duration
	CacheTTL       time.Duration
	CacheSize      int
	RateLimit      float64
	RateBurst      int
	Languages      []string // "" means any language
	LogFile        string
	LogLevel       string
	MetricsAddr    string
}

const (
	defaultConfigPath     = "~/.config/folio/config.toml"
	defaultLogFile        = "~/.local/state/folio/folio.log"
	defaultAPIURL         = "https://gutendex.com/books/"
	defaultUserAgent      = "folio/0.1"
	defaultRequestTimeout = 15 * time.Second
	defaultSearchDebounce = 400 * time.Millisecond
	defaultCacheTTL       = 5 * time.Minute
	defaultCacheSize      = 64
	defaultRateLimit      = 2.0
	defaultRateBurst      = 2
	defaultLogLevel       = "info"
)

// DefaultLanguages is the selector offered when the config lists none.
var DefaultLanguages = []string{"", "en", "pt", "es", "fr", "de"}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		UserAgent:      defaultUserAgent,
		RequestTimeout: defaultRequestTimeout,
		SearchDebounce: defaultSearchDebounce,
		CacheTTL:       defaultCacheTTL,
		CacheSize:      defaultCacheSize,
		RateLimit:      defaultRateLimit,
		RateBurst:      defaultRateBurst,
		Languages:      append([]string(nil), DefaultLanguages...),
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

type fileConfig struct {
	APIURL         string   `toml:"api_url"`
	UserAgent      string   `toml:"user_agent"`
	RequestTimeout string   `toml:"request_timeout"`
	SearchDebounce string   `toml:"search_debounce"`
	CacheTTL       string   `toml:"cache_ttl"`
	CacheSize      *int     `toml:"cache_size"`
	RateLimit      *float64 `toml:"rate_limit"`
	RateBurst      *int     `toml:"rate_burst"`
	Languages      []string `toml:"languages"`
	LogFile        string   `toml:"log_file"`
	LogLevel       string   `toml:"log_level"`
	MetricsAddr    string   `toml:"metrics_addr"`
}

// Load reads the folio config, falling back to defaults when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.apply(raw); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(raw fileConfig) error {
	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(raw.UserAgent); v != "" {
		c.UserAgent = v
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &c.RequestTimeout},
		{"search_debounce", raw.SearchDebounce, &c.SearchDebounce},
		{"cache_ttl", raw.CacheTTL, &c.CacheTTL},
	}
	for _, d := range durations {
		v := strings.TrimSpace(d.raw)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: %s: %w", d.key, err)
		}
		if parsed < 0 {
			return fmt.Errorf("parse config: %s must not be negative", d.key)
		}
		*d.dst = parsed
	}

	if raw.CacheSize != nil {
		if *raw.CacheSize < 0 {
			return fmt.Errorf("parse config: cache_size must not be negative")
		}
		c.CacheSize = *raw.CacheSize
	}
	if raw.RateLimit != nil {
		if *raw.RateLimit < 0 {
			return fmt.Errorf("parse config: rate_limit must not be negative")
		}
		c.RateLimit = *raw.RateLimit
	}
	if raw.RateBurst != nil {
		if *raw.RateBurst < 0 {
			return fmt.Errorf("parse config: rate_burst must not be negative")
		}
		c.RateBurst = *raw.RateBurst
	}

	if len(raw.Languages) > 0 {
		langs, err := NormalizeLanguages(raw.Languages)
		if err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
		c.Languages = langs
	}

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		expanded, err := expandPath(v)
		if err != nil {
			return fmt.Errorf("parse config: log_file: %w", err)
		}
		c.LogFile = expanded
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	c.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	return nil
}

// NormalizeLanguages lower-cases and validates language codes, drops
// duplicates and makes sure "any" ("") is offered first.
func NormalizeLanguages(codes []string) ([]string, error) {
	out := []string{""}
	seen := map[string]bool{"": true}
	for _, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "any" {
			code = ""
		}
		if seen[code] {
			continue
		}
		if _, err := language.ParseBase(code); err != nil {
			return nil, fmt.Errorf("languages: %q is not a language code", code)
		}
		seen[code] = true
		out = append(out, code)
	}
	return out, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// ExpandPath resolves a user-supplied path the same way config paths are.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}
