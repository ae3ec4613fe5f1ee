package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SCHEDULING_DB", "")
	t.Setenv("SCHEDULING_LOG", "")
	t.Setenv("SCHEDULING_LOG_LEVEL", "")

	require.NoError(t, LoadConfig(filepath.Join(t.TempDir(), "missing.json")))
	assert.Equal(t, DefaultConfig(), Config)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	t.Setenv("SCHEDULING_DB", "")
	t.Setenv("SCHEDULING_LOG", "/var/log/scheduling.log")
	t.Setenv("SCHEDULING_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_path": "/srv/sched.db", "default_view": "production", "confirm_cascade": false}`), 0644))

	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "/srv/sched.db", Config.DatabasePath)
	assert.Equal(t, "production", Config.DefaultView)
	assert.False(t, Config.ConfirmCascade)
	assert.Equal(t, "info", Config.LogLevel)
	assert.Equal(t, "/var/log/scheduling.log", Config.LogFile)

	t.Setenv("SCHEDULING_DB", "/tmp/override.db")
	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "/tmp/override.db", Config.DatabasePath)
}

func TestLoadConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_path": `), 0644))
	assert.Error(t, LoadConfig(path))
}

func TestSaveConfig(t *testing.T) {
	t.Setenv("SCHEDULING_DB", "")
	t.Setenv("SCHEDULING_LOG", "")
	t.Setenv("SCHEDULING_LOG_LEVEL", "")

	Config = DefaultConfig()
	Config.DefaultView = "summary"

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	require.NoError(t, SaveConfig(path))

	Config = AppConfig{}
	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "summary", Config.DefaultView)
	assert.Equal(t, DefaultConfig().DatabasePath, Config.DatabasePath)
}
