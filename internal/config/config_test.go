package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreType)
	assert.Equal(t, "mysql", cfg.DBType)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, 5, cfg.DBConnectionLimit)
	assert.Equal(t, "https://node.lighthouse.storage", cfg.PinningAPIURL)
	assert.Equal(t, 500*1024*1024, cfg.UploadMaxBytes)
	assert.Equal(t, "demo", cfg.DemoUser)
	assert.Equal(t, "demo", cfg.DemoPassword)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDatabaseStoreValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_TYPE", "database")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DATABASE")

	t.Setenv("DB_DATABASE", "datatrail")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")

	t.Setenv("DB_USER", "app")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "database", cfg.StoreType)
}

func TestLoadSqliteNeedsNoUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_TYPE", "database")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "datatrail.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBType)
}

func TestLoadRejectsUnknownStoreType(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_TYPE", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store type")
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_CONNECTION_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.DBConnectionLimit)
}
