// Package config loads settings from an optional TOML file, then applies
// DEPRECIATION_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Cache     CacheConfig     `toml:"cache"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Display   DisplayConfig   `toml:"display"`
	Log       LogConfig       `toml:"log"`
}

type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	IdleTimeout     Duration `toml:"idle_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

type RateLimitConfig struct {
	Requests int      `toml:"requests"`
	Window   Duration `toml:"window"`
}

type CacheConfig struct {
	Backend       string   `toml:"backend"` // "memory", "redis" or "none"
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

type DisplayConfig struct {
	Currency string `toml:"currency"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Duration lets TOML files use strings such as "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{15 * time.Second},
			IdleTimeout:     Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			AllowedOrigins:  []string{"http://localhost:5173", "http://localhost:8080"},
		},
		RateLimit: RateLimitConfig{
			Requests: 30,
			Window:   Duration{time.Minute},
		},
		Cache: CacheConfig{
			Backend:   "memory",
			TTL:       Duration{time.Hour},
			RedisAddr: "localhost:6379",
		},
		Metrics: MetricsConfig{Enabled: true},
		Display: DisplayConfig{Currency: "INR"},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path when it exists; an empty path or a missing file keeps the
// defaults. Environment variables win over both.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = getEnv("DEPRECIATION_ADDR", cfg.Server.Addr)
	cfg.Cache.Backend = getEnv("DEPRECIATION_CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.RedisAddr = getEnv("DEPRECIATION_REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = getEnv("DEPRECIATION_REDIS_PASSWORD", cfg.Cache.RedisPassword)
	cfg.Cache.TTL.Duration = getEnvDuration("DEPRECIATION_CACHE_TTL", cfg.Cache.TTL.Duration)
	cfg.RateLimit.Requests = getEnvInt("DEPRECIATION_RATE_LIMIT", cfg.RateLimit.Requests)
	cfg.RateLimit.Window.Duration = getEnvDuration("DEPRECIATION_RATE_WINDOW", cfg.RateLimit.Window.Duration)
	cfg.Metrics.Enabled = getEnvBool("DEPRECIATION_METRICS", cfg.Metrics.Enabled)
	cfg.Display.Currency = getEnv("DEPRECIATION_CURRENCY", cfg.Display.Currency)
	cfg.Log.Level = getEnv("DEPRECIATION_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("DEPRECIATION_LOG_FORMAT", cfg.Log.Format)
}

func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "memory", "none":
	case "redis":
		if strings.TrimSpace(c.Cache.RedisAddr) == "" {
			return fmt.Errorf("cache.redis_addr is required when cache.backend is redis")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("rate_limit.requests must be positive")
	}
	if c.RateLimit.Window.Duration <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if strings.TrimSpace(c.Display.Currency) == "" {
		return fmt.Errorf("display.currency must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
