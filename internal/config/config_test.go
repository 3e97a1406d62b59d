package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"DB_DRIVER", "DB_PATH", "DB_MAX_OPEN_CONNS", "HTTP_ADDRESS", "PORT",
	"GRPC_ADDRESS", "GRPC_PROBE_INTERVAL", "LOG_LEVEL", "LOG_FILE",
}

// clearEnv unsets every variable Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "exercise.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, ":3000", cfg.HTTP.Address)
	assert.Equal(t, "", cfg.GRPC.Address)
	assert.Equal(t, 15*time.Second, cfg.GRPC.ProbeInterval)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_PortAndAddressPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)

	t.Setenv("HTTP_ADDRESS", "127.0.0.1:9000")
	cfg, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Address)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_PATH=from-file.db\nLOG_LEVEL=DEBUG\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	clearEnv(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	_, err := Load(missing)
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")
	_, err = Load(missing)
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")

	clearEnv(t)
	t.Setenv("GRPC_PROBE_INTERVAL", "soon")
	_, err = Load(missing)
	assert.Error(t, err)
}

func TestString_MasksPostgresDSN(t *testing.T) {
	c := &Config{
		Database: DatabaseConfig{Driver: DriverPostgres, Path: "postgres://u:secret@db/x"},
		HTTP:     HTTPConfig{Address: ":3000"},
	}
	s := c.String()
	assert.False(t, strings.Contains(s, "secret"), s)
	assert.Contains(t, s, "gRPC health: disabled")
}
