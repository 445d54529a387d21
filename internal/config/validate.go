package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Empty credential paths are filled with per-user defaults.
func (c *Config) Validate() error {
	if err := c.API.validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if err := c.Credentials.validate(); err != nil {
		return fmt.Errorf("credentials: %w", err)
	}

	if c.State.ErrorLogSize <= 0 {
		return fmt.Errorf("state: error_log_size must be > 0 (got %d)", c.State.ErrorLogSize)
	}

	return nil
}

func (a *APIConfig) validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http(s) (got %q)", a.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url must include a host (got %q)", a.BaseURL)
	}
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")

	if a.VersionPrefix != "" && !strings.HasPrefix(a.VersionPrefix, "/") {
		a.VersionPrefix = "/" + a.VersionPrefix
	}
	a.VersionPrefix = strings.TrimRight(a.VersionPrefix, "/")

	if a.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %v)", a.Timeout)
	}
	if a.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0 (got %v)", a.RateLimit)
	}
	if a.RateLimit > 0 && a.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be >= 1 when rate_limit is set (got %d)", a.RateBurst)
	}
	return nil
}

func (c *CredentialsConfig) validate() error {
	if !c.IsBackendSupported() {
		return fmt.Errorf("unsupported backend %q (want one of %s)", c.Backend, strings.Join(Backends(), ", "))
	}

	switch c.Backend {
	case BackendFile:
		if c.FilePath == "" {
			dir, err := defaultDir()
			if err != nil {
				return err
			}
			c.FilePath = filepath.Join(dir, "credentials.json")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			dir, err := defaultDir()
			if err != nil {
				return err
			}
			c.SQLitePath = filepath.Join(dir, "credentials.db")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis backend")
		}
		if c.RedisTTL < 0 {
			return fmt.Errorf("redis_ttl must be >= 0 (got %v)", c.RedisTTL)
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres_dsn is required for the postgres backend")
		}
	}
	return nil
}

// defaultDir is the per-user directory holding local credential files.
func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ecowallet"), nil
}
