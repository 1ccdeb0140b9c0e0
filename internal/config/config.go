// Package config loads server configuration from an optional YAML file,
// .env files and environment variables, in increasing priority.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Board   BoardConfig   `yaml:"board"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int    `yaml:"port"`
	StaticPath      string `yaml:"static_path"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// StorageConfig selects and configures the blob store.
type StorageConfig struct {
	Driver string      `yaml:"driver"`
	Path   string      `yaml:"path"`
	Redis  RedisConfig `yaml:"redis"`
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
	Prefix   string `yaml:"prefix"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// BoardConfig sets the lifetimes of transient board state.
type BoardConfig struct {
	UndoWindow   string `yaml:"undo_window"`
	NoticeTTL    string `yaml:"notice_ttl"`
	HighlightTTL string `yaml:"highlight_ttl"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			StaticPath:      "./static",
			ShutdownTimeout: "10s",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   "./data/cafesync.db",
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				PoolSize: 10,
				Prefix:   "cafesync:",
			},
		},
		Log: LogConfig{Level: "info"},
		Board: BoardConfig{
			UndoWindow:   "3s",
			NoticeTTL:    "3s",
			HighlightTTL: "2s",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("STATIC_PATH"); v != "" {
		c.Server.StaticPath = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Storage.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Storage.Redis.Password = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the values that cannot fall back to a default.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path not configured (set DB_PATH)")
		}
	case DriverRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("redis address not configured (set REDIS_ADDR)")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (valid: %s, %s)", c.Storage.Driver, DriverSQLite, DriverRedis)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// GetShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

// GetUndoWindow returns how long a removed or renamed table can be restored.
func (c *Config) GetUndoWindow() time.Duration {
	return parseDuration(c.Board.UndoWindow, 3*time.Second)
}

// GetNoticeTTL returns how long a notice stays visible.
func (c *Config) GetNoticeTTL() time.Duration {
	return parseDuration(c.Board.NoticeTTL, 3*time.Second)
}

// GetHighlightTTL returns how long a highlighted seat stays marked.
func (c *Config) GetHighlightTTL() time.Duration {
	return parseDuration(c.Board.HighlightTTL, 2*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
