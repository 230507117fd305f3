package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 10*time.Second, cfg.Reminder.PollInterval())
	assert.Equal(t, 24*time.Hour, cfg.Backup.Interval())
	assert.False(t, cfg.AI.Provider.Enabled())
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: Production
jwt_secret: sekrit
storage:
  driver: MySQL
  host: db.internal
  name: journal
redis_url: redis://localhost:6379/0
reminder:
  poll_interval_seconds: 30
ai:
  provider:
    type: anthropic
    api_key: sk-test
backup:
  enable: true
  interval_hours: 6
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, StorageMySQL, cfg.Storage.Driver)
	assert.Equal(t, 30*time.Second, cfg.Reminder.PollInterval())
	assert.Equal(t, 6*time.Hour, cfg.Backup.Interval())
	assert.True(t, cfg.Backup.Enable)
	assert.True(t, cfg.AI.Provider.Enabled())
	assert.Equal(t, "anthropic", cfg.AI.Provider.Type)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: postgres\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownEnv(t *testing.T) {
	path := writeConfig(t, "env: staging\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDSNValue(t *testing.T) {
	explicit := StorageConfig{DSN: "user:pw@tcp(somewhere:3306)/db"}
	assert.Equal(t, "user:pw@tcp(somewhere:3306)/db", explicit.DSNValue())

	built := StorageConfig{Host: "db.internal", User: "journal", Password: "pw", Name: "journal"}
	dsn := built.DSNValue()
	assert.Contains(t, dsn, "journal:pw@tcp(db.internal:3306)/journal")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}
