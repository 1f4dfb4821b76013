package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("MYSQL_DSN", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	path := writeConfig(t, `
http_addr: ":9090"
log:
  level: debug
checkout:
  workers: 2
idempotency:
  backend: redis
  redis_addr: cache:6379
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2, cfg.Checkout.Workers)
	assert.Equal(t, 10000, cfg.Checkout.QueueSize)
	assert.Equal(t, BackendRedis, cfg.Idempotency.Backend)
	assert.Equal(t, "cache:6379", cfg.Idempotency.RedisAddr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "http_addr: \":9090\"\n")
	t.Setenv("BOOKSTORE_HTTP_ADDR", ":7070")
	t.Setenv("BOOKSTORE_CHECKOUT_WORKERS", "4")
	t.Setenv("BOOKSTORE_JOURNAL_BACKEND", "mysql")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, 4, cfg.Checkout.Workers)
	assert.Equal(t, BackendMySQL, cfg.Journal.Backend)
}

func TestLoad_InvalidEnvInteger(t *testing.T) {
	t.Setenv("BOOKSTORE_CHECKOUT_QUEUE_SIZE", "lots")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "checkout: [this is not a map"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "zero workers", modify: func(c *Config) { c.Checkout.Workers = 0 }},
		{name: "negative queue", modify: func(c *Config) { c.Checkout.QueueSize = -1 }},
		{name: "unknown idempotency backend", modify: func(c *Config) { c.Idempotency.Backend = "memcached" }},
		{name: "unknown journal backend", modify: func(c *Config) { c.Journal.Backend = "postgres" }},
		{name: "redis without address", modify: func(c *Config) {
			c.Idempotency.Backend = BackendRedis
			c.Idempotency.RedisAddr = ""
		}},
		{name: "empty http addr", modify: func(c *Config) { c.HTTPAddr = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}
