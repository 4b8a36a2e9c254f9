// Cache tests use testcontainers-go to spin up a Redis container and
// exercise the real client.
package cache

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// checkDockerAvailable checks if Docker is available and running.
func checkDockerAvailable() bool {
	cmd := exec.Command("docker", "info")
	return cmd.Run() == nil
}

// setupTestCache creates a Redis container and returns a Cache over it.
// Skips the test if Docker is not available.
func setupTestCache(t *testing.T) (*Cache, func()) {
	if !checkDockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := goredis.ParseURL(connStr)
	require.NoError(t, err)
	client := goredis.NewClient(opts)

	cleanup := func() {
		_ = client.Close()
		_ = container.Terminate(ctx)
	}
	return New(client), cleanup
}

func TestCacheRoundTrip(t *testing.T) {
	c, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	type payload struct {
		Points int64 `json:"points"`
	}

	var missed payload
	hit, err := c.Get(ctx, "absent", &missed)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "present", payload{Points: 175}, time.Minute))

	var got payload
	hit, err = c.Get(ctx, "present", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(175), got.Points)
}

func TestInvalidateUserClearsAllKeys(t *testing.T) {
	c, cleanup := setupTestCache(t)
	defer cleanup()
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()

	keys := []string{
		BalanceKey(userID),
		HistoryKey(userID, ""),
		HistoryKey(userID, "earning"),
		HistoryKey(userID, "withdrawal"),
	}
	for _, key := range keys {
		require.NoError(t, c.Set(ctx, key, "stale", time.Minute))
	}
	require.NoError(t, c.Set(ctx, BalanceKey(otherID), "fresh", time.Minute))

	require.NoError(t, c.InvalidateUser(ctx, userID))

	var val string
	for _, key := range keys {
		hit, err := c.Get(ctx, key, &val)
		require.NoError(t, err)
		assert.False(t, hit, "key %s should be gone", key)
	}

	// The other user's cache entries are untouched.
	hit, err := c.Get(ctx, BalanceKey(otherID), &val)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestInvalidateNoKeys(t *testing.T) {
	c, cleanup := setupTestCache(t)
	defer cleanup()

	require.NoError(t, c.Invalidate(context.Background()))
}
