package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "Failed to write temp config file")
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DYNAMODB_ENDPOINT_URL", "INTERACTIONS_TABLE_NAME", "DATABASE_URL", "AWS_REGION",
		"INTERACTIONS_STORE_BACKEND", "INTERACTIONS_HTTP_ADDR", "INTERACTIONS_LOG_LEVEL",
		"INTERACTIONS_DYNAMODB_ENDPOINT", "INTERACTIONS_DYNAMODB_TABLE", "INTERACTIONS_DYNAMODB_REGION",
		"INTERACTIONS_POSTGRES_DSN", "INTERACTIONS_DEFAULT_LIMIT", "INTERACTIONS_MAX_LIMIT",
	} {
		if v, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 10, cfg.DefaultLimit)
		assert.Equal(t, 100, cfg.MaxLimit)
		assert.Equal(t, "INFO", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, BackendDynamoDB, cfg.Store.Backend)
		assert.Equal(t, "", cfg.DynamoDB.Endpoint)
		assert.Equal(t, "us-east-1", cfg.DynamoDB.Region)
		assert.Equal(t, "Interactions", cfg.DynamoDB.Table)
	})

	t.Run("Prefixed Environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INTERACTIONS_STORE_BACKEND", "postgres")
		t.Setenv("INTERACTIONS_POSTGRES_DSN", "postgres://u:p@db:5432/x")
		t.Setenv("INTERACTIONS_HTTP_ADDR", ":9090")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, BackendPostgres, cfg.Store.Backend)
		assert.Equal(t, "postgres://u:p@db:5432/x", cfg.Postgres.DSN)
		assert.Equal(t, ":9090", cfg.HTTPAddr)
	})

	t.Run("Legacy Environment Names", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DYNAMODB_ENDPOINT_URL", "http://localhost:8000")
		t.Setenv("INTERACTIONS_TABLE_NAME", "InteractionsDev")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000", cfg.DynamoDB.Endpoint)
		assert.Equal(t, "InteractionsDev", cfg.DynamoDB.Table)
	})

	t.Run("Load From File", func(t *testing.T) {
		clearEnv(t)
		path := createTempConfigFile(t, "interactions-api.yaml", `
http_addr: ":7000"
log_format: json
request_timeout: 5s
store:
  backend: memory
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.HTTPAddr)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, BackendMemory, cfg.Store.Backend)
	})

	t.Run("Environment Overrides File", func(t *testing.T) {
		clearEnv(t)
		path := createTempConfigFile(t, "interactions-api.yaml", "store:\n  backend: memory\nlog_level: WARN\n")
		t.Setenv("INTERACTIONS_LOG_LEVEL", "DEBUG")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "DEBUG", cfg.LogLevel)
	})

	t.Run("Missing Explicit File", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Invalid Backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INTERACTIONS_STORE_BACKEND", "cassandra")
		_, err := Load("")
		assert.ErrorContains(t, err, "invalid store.backend")
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			HTTPAddr: ":8080", RequestTimeout: time.Second, DefaultLimit: 10, MaxLimit: 100,
			LogLevel: "info", LogFormat: "TEXT",
			Store:    StoreConfig{Backend: BackendDynamoDB},
			DynamoDB: DynamoDBConfig{Region: "us-east-1", Table: "Interactions"},
		}
	}
	base := valid()
	require.NoError(t, base.Validate())

	cases := map[string]func(c *Config){
		"empty addr":         func(c *Config) { c.HTTPAddr = "" },
		"zero timeout":       func(c *Config) { c.RequestTimeout = 0 },
		"default above max":  func(c *Config) { c.DefaultLimit = 101 },
		"zero max":           func(c *Config) { c.MaxLimit = 0 },
		"bad level":          func(c *Config) { c.LogLevel = "TRACE" },
		"bad format":         func(c *Config) { c.LogFormat = "xml" },
		"missing table":      func(c *Config) { c.DynamoDB.Table = "" },
		"missing region":     func(c *Config) { c.DynamoDB.Region = "" },
		"postgres no dsn":    func(c *Config) { c.Store.Backend = BackendPostgres },
		"postgres neg conns": func(c *Config) { c.Store.Backend = BackendPostgres; c.Postgres = PostgresConfig{DSN: "x", MaxConns: -1} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
