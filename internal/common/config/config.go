package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed config.default.toml
var defaultConf []byte

// ErrInvalidConfig is returned when configuration validation fails
var ErrInvalidConfig = errors.New("invalid config")

// ConfigPathEnv names an optional TOML or YAML file layered over the defaults.
const ConfigPathEnv = "SETLIST_CONFIG"

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Server ServerConfig `toml:"server" yaml:"server"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Store  StoreConfig  `toml:"store" yaml:"store"`
	Toggle ToggleConfig `toml:"toggle" yaml:"toggle"`
}

type ServerConfig struct {
	Port        string `toml:"port" yaml:"port"`
	Environment string `toml:"environment" yaml:"environment"`
	// Timeouts are in seconds.
	ReadTimeout    int    `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   int    `toml:"write_timeout" yaml:"write_timeout"`
	RequestTimeout int    `toml:"request_timeout" yaml:"request_timeout"`
	FrontendURL    string `toml:"frontend_url" yaml:"frontend_url"`
	// CORSOrigins empty means any origin.
	CORSOrigins []string `toml:"cors_origins" yaml:"cors_origins"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

type StoreConfig struct {
	Driver        string `toml:"driver" yaml:"driver"`
	URL           string `toml:"url" yaml:"url"`
	Name          string `toml:"name" yaml:"name"`
	RedisAddr     string `toml:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `toml:"redis_password" yaml:"redis_password"`
	RedisDB       int    `toml:"redis_db" yaml:"redis_db"`
	SQLitePath    string `toml:"sqlite_path" yaml:"sqlite_path"`
}

type ToggleConfig struct {
	Optimistic bool `toml:"optimistic" yaml:"optimistic"`
	MaxRetries int  `toml:"max_retries" yaml:"max_retries"`
}

// Load reads .env (if present), the embedded defaults, the optional file
// named by SETLIST_CONFIG, then environment overrides, and validates.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration embedded in config.default.toml.
func Default() *Config {
	var cfg Config
	if err := toml.Unmarshal(defaultConf, &cfg); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &cfg
}

// LoadFile merges a .toml, .yaml or .yml file over cfg. Keys absent from
// the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: unsupported config file extension %q", ErrInvalidConfig, ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeout) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeout) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeout) * time.Second
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: invalid port %q (must be 1-65535)", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("%w: timeouts must be non-negative", ErrInvalidConfig)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	}

	switch c.Store.Driver {
	case "memory", "redis":
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path is required for the sqlite driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}

	if c.Toggle.MaxRetries < 0 {
		return fmt.Errorf("%w: toggle max_retries must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// ============================================================
// Environment Overrides
// ============================================================

// applyEnvOverrides overrides config values with environment variables if
// set. Malformed numbers and booleans fail fast.
func applyEnvOverrides(cfg *Config) error {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Environment, "ENV")
	setString(&cfg.Log.Level, "LOG_LEVEL")

	// PUBLIC_FRONTEND_URL wins over FRONTEND_URL.
	setString(&cfg.Server.FrontendURL, "FRONTEND_URL")
	setString(&cfg.Server.FrontendURL, "PUBLIC_FRONTEND_URL")

	if value := os.Getenv("CORS_ORIGINS"); value != "" {
		cfg.Server.CORSOrigins = splitList(value)
	}

	setString(&cfg.Store.Driver, "STORE_DRIVER")
	setString(&cfg.Store.URL, "DATABASE_URL")
	setString(&cfg.Store.Name, "DATABASE_NAME")
	setString(&cfg.Store.RedisAddr, "REDIS_ADDR")
	setString(&cfg.Store.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.Store.SQLitePath, "SQLITE_PATH")

	for key, dst := range map[string]*int{
		"READ_TIMEOUT":       &cfg.Server.ReadTimeout,
		"WRITE_TIMEOUT":      &cfg.Server.WriteTimeout,
		"REQUEST_TIMEOUT":    &cfg.Server.RequestTimeout,
		"REDIS_DB":           &cfg.Store.RedisDB,
		"TOGGLE_MAX_RETRIES": &cfg.Toggle.MaxRetries,
	} {
		if err := setInt(dst, key); err != nil {
			return err
		}
	}

	if value := os.Getenv("TOGGLE_OPTIMISTIC"); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid TOGGLE_OPTIMISTIC %q: %w", value, err)
		}
		cfg.Toggle.Optimistic = b
	}
	return nil
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*dst = intVal
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
