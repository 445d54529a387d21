// Package testhelper starts throwaway PostgreSQL and Redis containers for
// credential store integration tests.
package testhelper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	pgOnce sync.Once
	pgDSN  string
	pgErr  error

	redisOnce sync.Once
	redisAddr string
	redisErr  error
)

// PostgresDSN starts a shared PostgreSQL container (once per test binary)
// and returns its DSN. Skipped under -short.
func PostgresDSN(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("testhelper: postgres container skipped in -short mode")
	}

	pgOnce.Do(func() {
		pgDSN, pgErr = startPostgres()
	})
	if pgErr != nil {
		t.Fatalf("testhelper: failed to start postgres: %v", pgErr)
	}
	return pgDSN
}

// RedisAddr starts a shared Redis container and returns host:port.
// Skipped under -short.
func RedisAddr(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("testhelper: redis container skipped in -short mode")
	}

	redisOnce.Do(func() {
		redisAddr, redisErr = startRedis()
	})
	if redisErr != nil {
		t.Fatalf("testhelper: failed to start redis: %v", redisErr)
	}
	return redisAddr
}

func startPostgres() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	host, port, err := start(ctx, req, "5432")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port), nil
}

func startRedis() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	}

	host, port, err := start(ctx, req, "6379")
	if err != nil {
		return "", err
	}
	return host + ":" + port, nil
}

func start(ctx context.Context, req testcontainers.ContainerRequest, port string) (string, string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", "", fmt.Errorf("start container %s: %w", req.Image, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", "", fmt.Errorf("get container host: %w", err)
	}

	mapped, err := container.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return "", "", fmt.Errorf("get mapped port: %w", err)
	}
	return host, mapped.Port(), nil
}
