package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MYSQL_DSN", "")

	cfg := New()

	assert.Equal(t, "50051", cfg.GRPC.Port)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 64, cfg.Realtime.SendBuffer)
	assert.Equal(t, 60*time.Second, cfg.Realtime.PongWait)
	assert.Contains(t, cfg.DB.DSN, "@tcp(localhost:3306)/muzz")
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte(`
grpc:
  port: "6000"
http:
  port: "9000"
realtime:
  send_buffer: 8
  allowed_origins: ["https://app.example"]
`)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_SOURCE", "yes")

	cfg := New()

	assert.Equal(t, "6000", cfg.GRPC.Port)
	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.Equal(t, 8, cfg.Realtime.SendBuffer)
	assert.Equal(t, []string{"https://app.example"}, cfg.Realtime.AllowedOrigins)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Log.Source)
}

func TestNew_ExplicitDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MYSQL_DSN", "u:p@tcp(db:3306)/x")

	cfg := New()
	assert.Equal(t, "u:p@tcp(db:3306)/x", cfg.DB.DSN)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(" , "))
}
