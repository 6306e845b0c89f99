package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv(EnvDB, "")
	t.Setenv(EnvLog, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dataHome, "stepcoach", "stepcoach.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dataHome, "stepcoach", "stepcoach.log"), cfg.LogPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.DirExists(t, filepath.Join(dataHome, "stepcoach"))
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	// t.Setenv restores the originals; godotenv skips variables that are set,
	// even to empty, so unset them afterwards.
	t.Setenv(EnvDB, "")
	t.Setenv(EnvLog, "")
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvDB)
	os.Unsetenv(EnvLog)
	os.Unsetenv(EnvLogLevel)

	envFile := filepath.Join(dir, ".env")
	content := "STEPCOACH_DB=" + filepath.Join(dir, "db", "x.db") + "\n" +
		"STEPCOACH_LOG_LEVEL=DEBUG\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "db", "x.db"), cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.DirExists(t, filepath.Join(dir, "db"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{DBPath: "a.db", LogPath: "a.log", LogLevel: "warn"}, false},
		{"no db", Config{LogPath: "a.log", LogLevel: "info"}, true},
		{"no log", Config{DBPath: "a.db", LogLevel: "info"}, true},
		{"bad level", Config{DBPath: "a.db", LogPath: "a.log", LogLevel: "loud"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
