package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/models"
)

func setupSessionRepository(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionRepository(rdb), mr
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	repo, mr := setupSessionRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "abc", time.Hour))

	ok, err := repo.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Hour, mr.TTL("session:abc"))

	has, err := repo.HasFlag(ctx, "abc", "admin_authenticated")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, repo.SetFlag(ctx, "abc", "admin_authenticated"))
	has, err = repo.HasFlag(ctx, "abc", "admin_authenticated")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, repo.DeleteFlag(ctx, "abc", "admin_authenticated"))
	assert.Empty(t, mr.HGet("session:abc", "admin_authenticated"))
	assert.True(t, mr.Exists("session:abc"))

	require.NoError(t, repo.Delete(ctx, "abc"))
	ok, err = repo.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo, mr := setupSessionRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "abc", time.Minute))
	mr.FastForward(2 * time.Minute)

	ok, err := repo.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionRepository_Flashes(t *testing.T) {
	repo, mr := setupSessionRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.PushFlash(ctx, "abc", models.Flash{Category: "success", Message: "one"}, time.Hour))
	require.NoError(t, repo.PushFlash(ctx, "abc", models.Flash{Category: "danger", Message: "two"}, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("session:abc:flash"))

	flashes, err := repo.PopFlashes(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []models.Flash{
		{Category: "success", Message: "one"},
		{Category: "danger", Message: "two"},
	}, flashes)

	flashes, err = repo.PopFlashes(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, flashes)
}
