package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Close()
	ctx := context.Background()
	companyID := uuid.New()
	paymentID := uuid.New()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, found, err := store.Get(ctx, companyID, "unknown")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, companyID, "key-1", paymentID))
		got, found, err := store.Get(ctx, companyID, "key-1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, paymentID, got)
	})

	t.Run("keys are scoped per company", func(t *testing.T) {
		_, found, err := store.Get(ctx, uuid.New(), "key-1")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestInMemoryIdempotencyStoreExpiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore(10 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()
	companyID := uuid.New()

	require.NoError(t, store.Put(ctx, companyID, "key", uuid.New()))
	time.Sleep(20 * time.Millisecond)

	_, found, err := store.Get(ctx, companyID, "key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryIdempotencyStoreCloseIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
