package config

import (
	"time"

	redisclient "github.com/vietddude/interact/internal/infra/redis"
	"github.com/vietddude/interact/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Platform PlatformConfig     `yaml:"platform"`
	Pool     PoolConfig         `yaml:"pool"`
	Redis    redisclient.Config `yaml:"redis"`
	Logging  LoggingConfig      `yaml:"logging"`
	Database postgres.Config    `yaml:"database"`
}

// ServerConfig holds the health/metrics HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// PlatformConfig holds the platform API client settings.
type PlatformConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// PoolConfig holds account pool settings.
type PoolConfig struct {
	// RedisLocks keeps queue locks in Redis instead of the SQL lock table.
	RedisLocks bool `yaml:"redis_locks"`
}
