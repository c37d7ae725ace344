package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kiranshivaraju/fixit/pkg/models"
)

// Config holds all configuration for the FixIt server.
type Config struct {
	Server    ServerConfig
	Knowledge KnowledgeConfig
	Diagnosis DiagnosisConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
}

type ServerConfig struct {
	Port            int
	Env             string
	LogLevel        slog.Level
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type KnowledgeConfig struct {
	// RulesPath overrides the embedded rule table when set.
	RulesPath  string
	IssuesPath string
}

type DiagnosisConfig struct {
	Strategy      string
	DefaultDevice string
}

type RedisConfig struct {
	URL string
}

type RateLimitConfig struct {
	RequestsPerMin int
}

type AuthConfig struct {
	Keys []models.APIKey
}

var validStrategies = map[string]bool{
	"rules":  true,
	"legacy": true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any value is invalid.
func Load() (*Config, error) {
	logLevel, err := parseLogLevel(envString("FIXIT_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	keys, err := parseAPIKeys(os.Getenv("FIXIT_API_KEYS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            envInt("FIXIT_PORT", 8000),
			Env:             envString("FIXIT_ENV", "development"),
			LogLevel:        logLevel,
			AllowedOrigins:  envList("FIXIT_ALLOWED_ORIGINS", []string{"*"}),
			ShutdownTimeout: envDuration("FIXIT_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Knowledge: KnowledgeConfig{
			RulesPath:  os.Getenv("FIXIT_RULES_PATH"),
			IssuesPath: envString("FIXIT_ISSUES_PATH", "data/issues.json"),
		},
		Diagnosis: DiagnosisConfig{
			Strategy:      envString("FIXIT_STRATEGY", "rules"),
			DefaultDevice: envString("FIXIT_DEFAULT_DEVICE", "phone"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMin: envInt("FIXIT_RATE_LIMIT_PER_MIN", 60),
		},
		Auth: AuthConfig{
			Keys: keys,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("FIXIT_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("FIXIT_SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}

	if !validStrategies[c.Diagnosis.Strategy] {
		return fmt.Errorf("FIXIT_STRATEGY must be one of rules, legacy; got %q", c.Diagnosis.Strategy)
	}

	if strings.TrimSpace(c.Diagnosis.DefaultDevice) == "" {
		return fmt.Errorf("FIXIT_DEFAULT_DEVICE must not be blank")
	}

	if c.Redis.URL != "" &&
		!strings.HasPrefix(c.Redis.URL, "redis://") && !strings.HasPrefix(c.Redis.URL, "rediss://") {
		return fmt.Errorf("REDIS_URL must start with redis:// or rediss://, got %q", c.Redis.URL)
	}

	if c.RateLimit.RequestsPerMin <= 0 {
		return fmt.Errorf("FIXIT_RATE_LIMIT_PER_MIN must be positive, got %d", c.RateLimit.RequestsPerMin)
	}

	return nil
}

// RateLimitEnabled reports whether a Redis backend is configured.
func (c *Config) RateLimitEnabled() bool {
	return c.Redis.URL != ""
}

// AuthEnabled reports whether API keys are required.
func (c *Config) AuthEnabled() bool {
	return len(c.Auth.Keys) > 0
}

// parseAPIKeys reads a comma-separated list of prefix:bcrypt-hash pairs.
func parseAPIKeys(v string) ([]models.APIKey, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	var keys []models.APIKey
	for i, item := range strings.Split(v, ",") {
		prefix, hash, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok || prefix == "" || hash == "" {
			return nil, fmt.Errorf("FIXIT_API_KEYS entry %d must be prefix:bcrypt-hash", i+1)
		}
		if len(prefix) != models.APIKeyPrefixLen {
			return nil, fmt.Errorf("FIXIT_API_KEYS entry %d: prefix %q must be %d characters", i+1, prefix, models.APIKeyPrefixLen)
		}
		if !strings.HasPrefix(hash, "$2") {
			return nil, fmt.Errorf("FIXIT_API_KEYS entry %d: hash for %q is not a bcrypt hash", i+1, prefix)
		}
		keys = append(keys, models.APIKey{Prefix: prefix, KeyHash: hash})
	}
	return keys, nil
}

func parseLogLevel(v string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("FIXIT_LOG_LEVEL must be one of debug, info, warn, error; got %q", v)
	}
	return level, nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
