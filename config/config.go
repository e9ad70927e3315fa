package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Capture   CaptureConfig
	AI        AIConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 5

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// CaptureConfig controls page capture behavior.
type CaptureConfig struct {
	// ViewportWidth/ViewportHeight are the fixed emulated viewport.
	ViewportWidth  int // default: 1280
	ViewportHeight int // default: 800

	// MaxTimeout is the hard deadline for one capture (navigation +
	// scroll sweep + screenshot + extraction).
	MaxTimeout time.Duration // default: 60s

	// ScrollStep is the auto-scroll step in pixels.
	ScrollStep int // default: 400

	// ScrollInterval is the pause between scroll steps, giving
	// lazy-loaded content a chance to trigger.
	ScrollInterval time.Duration // default: 150ms

	// Preflight enables a plain-HTTP reachability check with a Chrome
	// TLS fingerprint before any browser work.
	Preflight bool // default: true
}

// AIConfig controls the language-model client. An empty APIKey bypasses
// the AI orchestrator entirely; the heuristic analyzer takes over.
type AIConfig struct {
	APIKey  string
	Model   string        // default: "gpt-4o-mini"
	BaseURL string        // default: "https://api.openai.com/v1"
	Timeout time.Duration // per-request deadline; default: 45s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// APIKeys is the list of valid API keys. Empty disables auth.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per identity.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per identity.
	Burst int // default: 5
}

// CacheConfig controls the analysis response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached analyses.
	MaxEntries int // default: 200

	// TTL is how long a cached analysis stays valid. Zero disables
	// caching.
	TTL time.Duration // default: 0 (disabled)
}

// WebhookConfig controls analysis.completed event delivery.
type WebhookConfig struct {
	URL    string
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("STARWEB_HOST", "0.0.0.0"),
			Port: envIntOr("STARWEB_PORT", 8080),
			Mode: envOr("STARWEB_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("STARWEB_HEADLESS", true),
			MaxPages:   envIntOr("STARWEB_MAX_PAGES", 5),
			NoSandbox:  envBoolOr("STARWEB_NO_SANDBOX", false),
			BrowserBin: os.Getenv("STARWEB_BROWSER_BIN"),
		},
		Capture: CaptureConfig{
			ViewportWidth:  envIntOr("STARWEB_VIEWPORT_WIDTH", 1280),
			ViewportHeight: envIntOr("STARWEB_VIEWPORT_HEIGHT", 800),
			MaxTimeout:     envDurationOr("STARWEB_CAPTURE_TIMEOUT", 60*time.Second),
			ScrollStep:     envIntOr("STARWEB_SCROLL_STEP", 400),
			ScrollInterval: envDurationOr("STARWEB_SCROLL_INTERVAL", 150*time.Millisecond),
			Preflight:      envBoolOr("STARWEB_PREFLIGHT", true),
		},
		AI: AIConfig{
			APIKey:  os.Getenv("STARWEB_AI_API_KEY"),
			Model:   envOr("STARWEB_AI_MODEL", "gpt-4o-mini"),
			BaseURL: envOr("STARWEB_AI_BASE_URL", "https://api.openai.com/v1"),
			Timeout: envDurationOr("STARWEB_AI_TIMEOUT", 45*time.Second),
		},
		Auth: AuthConfig{
			APIKeys: envSliceOr("STARWEB_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("STARWEB_RATE_RPS", 2.0),
			Burst:             envIntOr("STARWEB_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("STARWEB_CACHE_MAX_ENTRIES", 200),
			TTL:        envDurationOr("STARWEB_CACHE_TTL", 0),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("STARWEB_WEBHOOK_URL"),
			Secret: os.Getenv("STARWEB_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("STARWEB_LOG_LEVEL", "info"),
			Format: envOr("STARWEB_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
