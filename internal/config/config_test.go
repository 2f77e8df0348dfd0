package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("LEGACY_DB_HOST", "legacy-host")
	t.Setenv("LEGACY_FILE_ROOT", "/srv/legacy/uploads")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.True(t, cfg.Storage.MinIO.UseSSL)
	assert.Equal(t, "legacy-host", cfg.Legacy.Database.Host)
	assert.Equal(t, "/srv/legacy/uploads", cfg.Legacy.FileRoot)
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "fs", cfg.Storage.Backend)
	assert.Equal(t, "./data/documents", cfg.Storage.FSRoot)
	assert.Equal(t, "5432", cfg.Legacy.Database.Port)
}

func TestEnvHelpers(t *testing.T) {
	t.Run("getEnv", func(t *testing.T) {
		t.Setenv("TEST_ENV_VAR", "value")
		assert.Equal(t, "value", getEnv("TEST_ENV_VAR", "default"))
		assert.Equal(t, "default", getEnv("TEST_ENV_MISSING", "default"))
	})

	t.Run("getEnvBool", func(t *testing.T) {
		t.Setenv("TEST_BOOL_VAR", "true")
		assert.True(t, getEnvBool("TEST_BOOL_VAR", false))

		t.Setenv("TEST_BOOL_VAR", "false")
		assert.False(t, getEnvBool("TEST_BOOL_VAR", true))

		// Unparseable values fall back to the default.
		t.Setenv("TEST_BOOL_VAR", "yep")
		assert.True(t, getEnvBool("TEST_BOOL_VAR", true))

		assert.True(t, getEnvBool("TEST_BOOL_MISSING", true))
	})

	t.Run("getEnvInt", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "123")
		assert.Equal(t, 123, getEnvInt("TEST_INT_VAR", 0))

		t.Setenv("TEST_INT_VAR", "not-a-number")
		assert.Equal(t, 10, getEnvInt("TEST_INT_VAR", 10))

		assert.Equal(t, 10, getEnvInt("TEST_INT_MISSING", 10))
	})
}
