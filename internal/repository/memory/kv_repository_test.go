package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/dailydle/internal/repository/memory"
)

func TestKVRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewKVRepository()

	_, found, err := repo.Get(ctx, "a", "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "a", "k", "1"))
	require.NoError(t, repo.Set(ctx, "b", "k", "2"))
	require.NoError(t, repo.Set(ctx, "a", "k", "3"))

	v, found, err := repo.Get(ctx, "a", "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "3", v)
	assert.Equal(t, 2, repo.Len())
}
