package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9000"
database:
  url: "user:pass@tcp(localhost:3306)/belediye"
jwt:
  secret: "s3cret"
cors:
  allowed_origins: ["https://panel.example.org"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, "Europe/Istanbul", cfg.Server.Timezone)
	assert.Equal(t, []string{"https://panel.example.org"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 20*time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, 10, cfg.Storage.MaxSizeMB)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "file-dsn"
jwt:
  secret: "from-file"
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "8081")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, ":8081", cfg.Server.Address)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "dsn"
`)
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "env-dsn")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-dsn", cfg.Database.URL)
	assert.Equal(t, ":4001", cfg.Server.Address)
}
