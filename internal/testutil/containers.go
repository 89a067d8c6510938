// SPDX-License-Identifier: MIT

// Package testutil starts shared database containers for backend tests.
// Every helper skips the calling test when Docker is unavailable.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type container struct {
	once     sync.Once
	endpoint string
	err      error
}

var (
	redisC    container
	postgresC container
	mongoC    container
)

// start runs image once per test binary and records its host:port endpoint.
// The container lives until the binary exits; Ryuk reaps it.
func (c *container) start(t *testing.T, image string, opts ...testcontainers.ContainerCustomizer) string {
	t.Helper()

	c.once.Do(func() {
		defer func() {
			// testcontainers panics when no Docker host can be found.
			if r := recover(); r != nil {
				c.err = fmt.Errorf("docker unavailable: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		ctr, err := testcontainers.Run(ctx, image, opts...)
		if err != nil {
			c.err = err
			return
		}
		endpoint, err := ctr.Endpoint(ctx, "")
		if err != nil {
			_ = ctr.Terminate(context.Background())
			c.err = err
			return
		}
		c.endpoint = endpoint
	})

	if c.err != nil {
		t.Skipf("skipping: %s container: %v", image, c.err)
	}
	return c.endpoint
}

// RedisAddr returns host:port of a shared redis:7 container.
func RedisAddr(t *testing.T) string {
	t.Helper()
	return redisC.start(t, "redis:7",
		testcontainers.WithExposedPorts("6379/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("6379/tcp"),
			wait.ForLog("Ready to accept connections"),
		),
	)
}

// PostgresDSN returns a pgx DSN of a shared postgres:16 container.
func PostgresDSN(t *testing.T) string {
	t.Helper()
	endpoint := postgresC.start(t, "postgres:16",
		testcontainers.WithExposedPorts("5432/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				// The server logs readiness twice: once for initdb, once for real.
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2*time.Minute),
		),
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_USER":     "lvfst",
			"POSTGRES_PASSWORD": "lvfst",
			"POSTGRES_DB":       "lvfst_test",
		}),
	)
	return fmt.Sprintf("postgres://lvfst:lvfst@%s/lvfst_test?sslmode=disable", endpoint)
}

// MongoURI returns a connection URI of a shared mongo:7 container.
func MongoURI(t *testing.T) string {
	t.Helper()
	endpoint := mongoC.start(t, "mongo:7",
		testcontainers.WithExposedPorts("27017/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("27017/tcp").WithStartupTimeout(2*time.Minute),
		),
	)
	return "mongodb://" + endpoint
}
