package config

import (
	"slices"
	"time"
)

// Config is the root application configuration.
type Config struct {
	API         APIConfig         `yaml:"api"`
	Credentials CredentialsConfig `yaml:"credentials"`
	State       StateConfig       `yaml:"state"`
	Log         LogConfig         `yaml:"log"`
}

// APIConfig holds settings for the remote REST backend.
type APIConfig struct {
	BaseURL       string        `yaml:"base_url"       env:"API_BASE_URL"       env-required:"true"`
	VersionPrefix string        `yaml:"version_prefix" env:"API_VERSION_PREFIX" env-default:"/api/v1"`
	Timeout       time.Duration `yaml:"timeout"        env:"API_TIMEOUT"        env-default:"30s"`
	RateLimit     float64       `yaml:"rate_limit"     env:"API_RATE_LIMIT"     env-default:"0"`
	RateBurst     int           `yaml:"rate_burst"     env:"API_RATE_BURST"     env-default:"1"`
	UserAgent     string        `yaml:"user_agent"     env:"API_USER_AGENT"     env-default:"ecowallet-client"`
}

// Credential store backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// CredentialsConfig selects and configures the persisted credential store.
type CredentialsConfig struct {
	Backend       string        `yaml:"backend"        env:"CREDENTIALS_BACKEND"        env-default:"file"`
	FilePath      string        `yaml:"file_path"      env:"CREDENTIALS_FILE_PATH"`
	Secret        string        `yaml:"secret"         env:"CREDENTIALS_SECRET"`
	SQLitePath    string        `yaml:"sqlite_path"    env:"CREDENTIALS_SQLITE_PATH"`
	RedisAddr     string        `yaml:"redis_addr"     env:"CREDENTIALS_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"CREDENTIALS_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"CREDENTIALS_REDIS_DB"       env-default:"0"`
	RedisPrefix   string        `yaml:"redis_prefix"   env:"CREDENTIALS_REDIS_PREFIX"   env-default:"ecowallet:"`
	RedisTTL      time.Duration `yaml:"redis_ttl"      env:"CREDENTIALS_REDIS_TTL"      env-default:"0s"`
	PostgresDSN   string        `yaml:"postgres_dsn"   env:"CREDENTIALS_POSTGRES_DSN"`
}

// StateConfig holds client state settings.
type StateConfig struct {
	ErrorLogSize int `yaml:"error_log_size" env:"STATE_ERROR_LOG_SIZE" env-default:"20"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Backends returns every supported credential store backend.
func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendSQLite, BackendRedis, BackendPostgres}
}

// IsBackendSupported checks if the given backend name is known.
func (c CredentialsConfig) IsBackendSupported() bool {
	return slices.Contains(Backends(), c.Backend)
}
