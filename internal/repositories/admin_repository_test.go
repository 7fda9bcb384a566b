package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/models"
)

func TestAdminRepository_CreateIfAbsent(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repo := NewAdminRepository(pool)

	created, err := repo.CreateIfAbsent(ctx, &models.AdminUser{Username: "admin", PasswordHash: "first"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, &models.AdminUser{Username: "admin", PasswordHash: "second"})
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	user, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "first", user.PasswordHash)

	missing, err := repo.FindByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
