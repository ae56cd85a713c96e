package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is read from the environment once at startup.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Store  StoreConfig
	Cache  CacheConfig
}

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Env   string
	Level string
}

type StoreConfig struct {
	Shards int
}

// CacheConfig sizes the person response cache. MaxCost is in bytes; zero
// turns the cache off.
type CacheConfig struct {
	MaxCost int64
}

// Load reads every setting, falling back to defaults for unset variables.
func Load() (*Config, error) {
	var errs []error

	durationOf := func(key string, def time.Duration) time.Duration {
		v, err := getEnvDuration(key, def)
		errs = append(errs, err)
		return v
	}

	shards, err := getEnvInt("STORE_SHARDS", 32)
	errs = append(errs, err)

	maxCost, err := getEnvInt64("CACHE_MAX_COST", 64<<20)
	errs = append(errs, err)

	cfg := &Config{
		Server: ServerConfig{
			Addr:            normalizeAddr(getEnv("HTTP_ADDR", "0.0.0.0:3000")),
			ReadTimeout:     durationOf("READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    durationOf("WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     durationOf("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: durationOf("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Env:   getEnv("APP_ENV", EnvDevelopment),
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{Shards: shards},
		Cache: CacheConfig{MaxCost: maxCost},
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR is required"))
	}
	if c.Log.Env != EnvDevelopment && c.Log.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Log.Env))
	}
	if c.Store.Shards < 1 {
		errs = append(errs, fmt.Errorf("STORE_SHARDS must be at least 1, got %d", c.Store.Shards))
	}
	if c.Cache.MaxCost < 0 {
		errs = append(errs, fmt.Errorf("CACHE_MAX_COST must not be negative, got %d", c.Cache.MaxCost))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

// normalizeAddr turns a bare port such as "3000" into an address bound on
// all interfaces.
func normalizeAddr(addr string) string {
	if addr == "" || strings.Contains(addr, ":") {
		return addr
	}
	return "0.0.0.0:" + addr
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return d, nil
}
