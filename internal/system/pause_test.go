package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPauseStore(t *testing.T) {
	store := NewMemoryPauseStore()
	ctx := context.Background()

	paused, err := store.Paused(ctx)
	require.NoError(t, err)
	assert.False(t, paused)

	require.NoError(t, store.SetPaused(ctx, true))
	paused, err = store.Paused(ctx)
	require.NoError(t, err)
	assert.True(t, paused)

	require.NoError(t, store.SetPaused(ctx, false))
	paused, err = store.Paused(ctx)
	require.NoError(t, err)
	assert.False(t, paused)
}
