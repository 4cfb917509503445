package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Storage: StorageConfig{
			BooksPath:   "/data/library_data.json",
			RecordsPath: "/data/borrow.json",
		},
	}
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// clearEnv unsets the config keys for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENV", "LOG_LEVEL", "BOOKS_PATH", "RECORDS_PATH", "STRICT_LOAD"} {
		t.Setenv(key, "")
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true}, // case insensitive
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_StoragePaths(t *testing.T) {
	t.Run("empty books path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.BooksPath = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "books path cannot be empty")
	})

	t.Run("empty records path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.RecordsPath = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "records path cannot be empty")
	})

	t.Run("same file for both stores", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.RecordsPath = "/data/./library_data.json"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot share one file")
	})
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig(newFlagSet(), []string{"-env-file", filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.False(t, cfg.Storage.StrictLoad)
	assert.Equal(t, "library_data.json", filepath.Base(cfg.Storage.BooksPath))
	assert.Equal(t, "borrow.json", filepath.Base(cfg.Storage.RecordsPath))
	assert.True(t, filepath.IsAbs(cfg.Storage.BooksPath))
	assert.True(t, filepath.IsAbs(cfg.Storage.RecordsPath))
}

func TestLoadConfig_FlagsBeatEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("BOOKS_PATH", "/env/books.json")
	t.Setenv("STRICT_LOAD", "yes")

	fs := newFlagSet()
	cfg, err := LoadConfig(fs, []string{
		"-log-level", "debug",
		"-records-path", "/flag/records.json",
		"-env-file", "/nonexistent/.env",
		"borrow", "123",
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "/env/books.json", cfg.Storage.BooksPath)
	assert.Equal(t, "/flag/records.json", cfg.Storage.RecordsPath)
	assert.True(t, cfg.Storage.StrictLoad)
	assert.Equal(t, []string{"borrow", "123"}, fs.Args())
}

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(newFlagSet(), []string{"-env", "qa", "-env-file", "/nonexistent/.env"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}

func TestLoadConfig_UnknownFlag(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(newFlagSet(), []string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde", "~/lib/books.json", filepath.Join(homeDir, "lib/books.json")},
		{"absolute", "/srv/lib/../books.json", "/srv/books.json"},
		{"empty uses default", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.in, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetBoolConfigValue(t *testing.T) {
	t.Setenv("TEST_BOOL", "")

	assert.True(t, getBoolConfigValue("true", "TEST_BOOL", false))
	assert.True(t, getBoolConfigValue("YES", "TEST_BOOL", false))
	assert.False(t, getBoolConfigValue("nope", "TEST_BOOL", true))
	assert.True(t, getBoolConfigValue("", "TEST_BOOL", true))
}

func TestLoadEnvFile_ValidFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")

	content := `# Test env file
ENV=staging
LOG_LEVEL=debug
BOOKS_PATH="/quoted/books.json"
RECORDS_PATH='/single/borrow.json'
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	clearEnv(t)

	require.NoError(t, loadEnvFile(envFile))

	assert.Equal(t, "staging", os.Getenv("ENV"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "/quoted/books.json", os.Getenv("BOOKS_PATH"))
	assert.Equal(t, "/single/borrow.json", os.Getenv("RECORDS_PATH"))
}

func TestLoadEnvFile_InvalidFormat(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("VALID=1\nINVALID LINE\n"), 0o644))

	err := loadEnvFile(envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format at line 2")
}

func TestLoadEnvFile_ExistingEnvVarsNotOverwritten(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug"), 0o644))

	require.NoError(t, loadEnvFile(envFile))
	assert.Equal(t, "error", os.Getenv("LOG_LEVEL"))
}
