package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "jwt:\n  secret: test-secret\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "uploads", cfg.Server.StoragePath)
	assert.Equal(t, "academia", cfg.Database.DBName)
	assert.Equal(t, "ams.edu.mk", cfg.University.EmailDomain)
	assert.Equal(t, "github.com", cfg.University.ProjectHost)
	assert.Equal(t, "12h", cfg.JWT.AccessTokenExpiration)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfigFile(t, "jwt:\n  secret: test-secret\nserver:\n  port: \"9000\"\n")

	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DB_MAX_OPEN_CONNS", "42")
	t.Setenv("UNIVERSITY_PROJECT_HOST", "codeberg.org")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 42, cfg.Database.MaxOpenConns)
	assert.Equal(t, "codeberg.org", cfg.University.ProjectHost)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"9000\"\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadExpiration(t *testing.T) {
	path := writeConfigFile(t, "jwt:\n  secret: s\n  access_token_expiration: nonsense\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
