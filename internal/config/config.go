package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	GRPC     GRPCConfig
	Log      LogConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver       string // "sqlite3" or "pgx"
	Path         string // SQLite file path or PostgreSQL DSN
	MaxOpenConns int
}

// HTTPConfig contains REST API settings.
type HTTPConfig struct {
	Address string // listen address (e.g., ":3000")
}

// GRPCConfig contains health endpoint settings. An empty Address disables it.
type GRPCConfig struct {
	Address       string
	ProbeInterval time.Duration
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string
	File  string // empty logs to console only
}

// Load reads an optional .env file (or the given files), then builds the
// configuration from environment variables with sensible defaults.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	maxOpen, err := getEnvInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return nil, err
	}
	probe, err := getEnvDuration("GRPC_PROBE_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", DriverSQLite),
			Path:         getEnv("DB_PATH", "exercise.db"),
			MaxOpenConns: maxOpen,
		},
		HTTP: HTTPConfig{
			Address: httpAddress(),
		},
		GRPC: GRPCConfig{
			Address:       getEnv("GRPC_ADDRESS", ""),
			ProbeInterval: probe,
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if c.HTTP.Address == "" {
		return fmt.Errorf("HTTP address must not be empty")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.Database.MaxOpenConns)
	}
	return nil
}

// httpAddress prefers HTTP_ADDRESS, then a bare PORT, then :3000.
func httpAddress() string {
	if addr, ok := os.LookupEnv("HTTP_ADDRESS"); ok && addr != "" {
		return addr
	}
	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		return ":" + port
	}
	return ":3000"
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config. The DSN is masked for Postgres.
func (c *Config) String() string {
	dsn := c.Database.Path
	if c.Database.Driver == DriverPostgres {
		dsn = "*** (masked) ***"
	}
	grpcAddr := c.GRPC.Address
	if grpcAddr == "" {
		grpcAddr = "disabled"
	}
	return fmt.Sprintf("Config{DB: %s %s, HTTP: %s, gRPC health: %s, Log: %s}",
		c.Database.Driver, dsn, c.HTTP.Address, grpcAddr, c.Log.Level)
}
