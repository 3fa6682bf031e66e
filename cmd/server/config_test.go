package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/folio/internal/factory"
	"github.com/mcoot/folio/internal/services/uploads"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, factory.StorageTypeSQLite, cfg.Factory.StorageType)
	assert.Empty(t, cfg.Factory.DatabaseURL)
	assert.Equal(t, factory.SessionStoreMemory, cfg.Factory.SessionStore)
	assert.Equal(t, "static/uploads", cfg.Factory.UploadDir)
	assert.Zero(t, cfg.Factory.MaxUploadBytes)
	assert.Nil(t, cfg.Factory.RedisConfig)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.StaticDir)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := loadConfig(envFrom(map[string]string{
		"LISTEN_PORT":      "9090",
		"STORAGE_TYPE":     "postgres",
		"DATABASE_URL":     "postgres://folio@localhost/folio",
		"SESSION_STORE":    "redis",
		"REDIS_URL":        "redis://cache:6379/1",
		"UPLOAD_DIR":       "/var/lib/folio/uploads",
		"MAX_UPLOAD_BYTES": "1048576",
		"SESSION_TTL":      "2h",
		"STATIC_DIR":       "/srv/static",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, factory.StorageTypePostgres, cfg.Factory.StorageType)
	assert.Equal(t, "postgres://folio@localhost/folio", cfg.Factory.DatabaseURL)
	require.NotNil(t, cfg.Factory.RedisConfig)
	assert.Equal(t, "redis://cache:6379/1", cfg.Factory.RedisConfig.URL)
	assert.Equal(t, "/var/lib/folio/uploads", cfg.Factory.UploadDir)
	assert.Equal(t, int64(uploads.DefaultMaxBytes/2), cfg.Factory.MaxUploadBytes)
	assert.Equal(t, 2*time.Hour, cfg.Factory.AuthConfig.SessionDuration)
	assert.Equal(t, "/srv/static", cfg.StaticDir)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"port not a number":   {"LISTEN_PORT": "http"},
		"port out of range":   {"LISTEN_PORT": "70000"},
		"negative upload cap": {"MAX_UPLOAD_BYTES": "-1"},
		"bad ttl":             {"SESSION_TTL": "forever"},
		"redis without url":   {"SESSION_STORE": "redis"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(envFrom(env))
			assert.Error(t, err)
		})
	}
}
