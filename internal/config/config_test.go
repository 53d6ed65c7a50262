package config

import (
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
		Data:   DataConfig{BasePath: "/some/path"},
	}
}

func TestValidateValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateEnvironments(t *testing.T) {
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

func TestValidateLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"WARN", true}, // case insensitive
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

func TestValidateFeedbackRecipientRequiredWithSMTP(t *testing.T) {
	cfg := validConfig()
	cfg.Mail.Host = "smtp.example.com"

	assert.Error(t, cfg.Validate())

	cfg.Feedback.Recipient = "admin@example.com"
	assert.NoError(t, cfg.Validate())
}

func TestDerivedPaths(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, filepath.Join("/some/path", "favouritebooks.db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join("/some/path", "search.bleve"), cfg.SearchIndexPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		def  string
		want string
	}{
		{"empty uses default", "", "/default", "/default"},
		{"tilde expands", "~/data", "", filepath.Join(home, "data")},
		{"absolute unchanged", "/abs/path", "", "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.in, tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetConfigValuePrecedence(t *testing.T) {
	t.Setenv("FB_TEST_VALUE", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "FB_TEST_VALUE", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "FB_TEST_VALUE", "default"))
	assert.Equal(t, "default", getConfigValue("", "FB_TEST_MISSING", "default"))
}

func TestGetIntConfigValue(t *testing.T) {
	t.Setenv("FB_TEST_INT", "42")
	assert.Equal(t, 42, getIntConfigValue("", "FB_TEST_INT", 7))

	t.Setenv("FB_TEST_INT", "not a number")
	assert.Equal(t, 7, getIntConfigValue("", "FB_TEST_INT", 7))
}

func TestGetFloatConfigValue(t *testing.T) {
	t.Setenv("FB_TEST_FLOAT", "0.5")
	assert.InDelta(t, 0.5, getFloatConfigValue("", "FB_TEST_FLOAT", 1.0), 0.001)

	t.Setenv("FB_TEST_FLOAT", "junk")
	assert.InDelta(t, 1.0, getFloatConfigValue("", "FB_TEST_FLOAT", 1.0), 0.001)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment line\nFB_TEST_DOTENV=hello\nFB_TEST_QUOTED=\"quoted value\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("FB_TEST_DOTENV", "")
	os.Unsetenv("FB_TEST_DOTENV")
	t.Setenv("FB_TEST_QUOTED", "")
	os.Unsetenv("FB_TEST_QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("FB_TEST_DOTENV"))
	assert.Equal(t, "quoted value", os.Getenv("FB_TEST_QUOTED"))
}

func TestLoadEnvFileRespectsExistingEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("FB_TEST_EXISTING=from-file\n"), 0o600))

	t.Setenv("FB_TEST_EXISTING", "from-env")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "from-env", os.Getenv("FB_TEST_EXISTING"))
}

func TestLoadEnvFileInvalidLine(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("not a valid line\n"), 0o600))

	assert.Error(t, loadEnvFile(envPath))
}
