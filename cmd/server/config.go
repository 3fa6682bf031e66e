package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mcoot/folio/internal/api"
	"github.com/mcoot/folio/internal/factory"
	"github.com/mcoot/folio/internal/services/auth"
	redisstorage "github.com/mcoot/folio/internal/storage/redis"
)

// Defaults applied when the environment leaves a setting empty
const (
	defaultStorageType = factory.StorageTypeSQLite
	defaultUploadDir   = "static/uploads"
)

// config is everything main needs, parsed from the environment
type config struct {
	Factory   factory.Config
	Server    api.ServerConfig
	StaticDir string
}

// loadConfig reads settings through getenv so tests can supply their own environment
func loadConfig(getenv func(string) string) (config, error) {
	cfg := config{
		Factory: factory.Config{
			StorageType:  getOrDefault(getenv, "STORAGE_TYPE", defaultStorageType),
			DatabaseURL:  getenv("DATABASE_URL"),
			SessionStore: getOrDefault(getenv, "SESSION_STORE", factory.SessionStoreMemory),
			UploadDir:    getOrDefault(getenv, "UPLOAD_DIR", defaultUploadDir),
		},
		Server:    api.DefaultServerConfig(),
		StaticDir: getenv("STATIC_DIR"),
	}

	if v := getenv("LISTEN_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return config{}, fmt.Errorf("invalid LISTEN_PORT %q", v)
		}
		cfg.Server.Port = port
	}

	if v := getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return config{}, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q", v)
		}
		cfg.Factory.MaxUploadBytes = n
	}

	if v := getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return config{}, fmt.Errorf("invalid SESSION_TTL %q", v)
		}
		cfg.Factory.AuthConfig = auth.Config{SessionDuration: ttl}
	}

	if cfg.Factory.SessionStore == factory.SessionStoreRedis {
		redisURL := getenv("REDIS_URL")
		if redisURL == "" {
			return config{}, fmt.Errorf("REDIS_URL required when SESSION_STORE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.Factory.RedisConfig = &redisCfg
	}

	return cfg, nil
}

func getOrDefault(getenv func(string) string, key, defaultVal string) string {
	if val := getenv(key); val != "" {
		return val
	}
	return defaultVal
}
