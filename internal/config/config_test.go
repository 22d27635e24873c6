package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendwise/internal/log"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid memory backend config",
			config: Config{
				DataBackend:   "memory",
				DataDirectory: "data",
				LogLevel:      "info",
				LogFormat:     "text",
			},
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: "./test.db",
				LogLevel:     "debug",
				LogFormat:    "json",
			},
		},
		{
			name: "invalid data backend",
			config: Config{
				DataBackend: "sheets",
				LogLevel:    "info",
				LogFormat:   "text",
			},
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite]",
		},
		{
			name: "sqlite backend missing database path",
			config: Config{
				DataBackend: "sqlite",
				LogLevel:    "info",
				LogFormat:   "text",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name: "invalid log level",
			config: Config{
				DataBackend: "memory",
				LogLevel:    "verbose",
				LogFormat:   "text",
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name: "warning is not a level name",
			config: Config{
				DataBackend: "memory",
				LogLevel:    "warning",
				LogFormat:   "text",
			},
			wantErr:     true,
			errorString: "invalid log level 'warning'",
		},
		{
			name: "multiple validation errors",
			config: Config{
				DataBackend: "bogus",
				LogLevel:    "loud",
				LogFormat:   "xml",
			},
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestLogLevelsAgreeWithLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "warning", "verbose"} {
		t.Run(level, func(t *testing.T) {
			cfg := Config{DataBackend: "memory", LogLevel: level, LogFormat: "text"}
			_, parseErr := log.ParseLevel(level)
			assert.Equal(t, parseErr == nil, cfg.Validate() == nil)
		})
	}
}

func TestConfig_ValidateWithFiles(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("sqlite directory is created", func(t *testing.T) {
		cfg := Config{
			DataBackend:  "sqlite",
			SQLiteDBPath: filepath.Join(tempDir, "nested", "dir", "spendwise.db"),
			LogLevel:     "info",
			LogFormat:    "text",
		}
		require.NoError(t, cfg.Validate())
		assert.DirExists(t, filepath.Join(tempDir, "nested", "dir"))
	})

	t.Run("data directory is a file", func(t *testing.T) {
		file := filepath.Join(tempDir, "not-a-dir")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		cfg := Config{
			DataBackend:   "memory",
			DataDirectory: file,
			LogLevel:      "info",
			LogFormat:     "text",
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a directory")
	})
}

func TestLoad(t *testing.T) {
	// Run from an empty dir so no stray spendwise.yaml is picked up
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	// Empty values count as unset
	for _, key := range []string{"DATA_BACKEND", "SQLITE_DB_PATH", "DATA_DIRECTORY", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.DataBackend)
		assert.Equal(t, filepath.Join("data", "spendwise.db"), cfg.SQLiteDBPath)
		assert.Equal(t, "data", cfg.DataDirectory)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("DATA_BACKEND", "SQLite")
		t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.DataBackend)
		assert.Equal(t, "/tmp/test.db", cfg.SQLiteDBPath)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("config file in working directory", func(t *testing.T) {
		require.NoError(t, os.WriteFile(FileName+".yaml",
			[]byte("data_backend: memory\nsqlite_db_path: ./from-file.db\n"), 0o644))
		t.Cleanup(func() { os.Remove(FileName + ".yaml") })

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.DataBackend)
		assert.Equal(t, "./from-file.db", cfg.SQLiteDBPath)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(FileName+".yaml", []byte("log_level: warn\n"), 0o644))
		t.Cleanup(func() { os.Remove(FileName + ".yaml") })
		t.Setenv("LOG_LEVEL", "error")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_directory: seeds\nlog_format: json\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "seeds", cfg.DataDirectory)
	assert.Equal(t, "json", cfg.LogFormat)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
