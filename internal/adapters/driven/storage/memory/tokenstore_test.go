package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagraph/hagraph/internal/core/domain"
)

func TestTokenStore_SaveLoadDelete(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	_, err := store.Load(ctx, "client-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Save(ctx, "client-1", domain.OAuthToken{AccessToken: "at"}))
	got, err := store.Load(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "at", got.AccessToken)

	require.NoError(t, store.Delete(ctx, "client-1"))
	_, err = store.Load(ctx, "client-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTokenStore_LoadReturnsCopy(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "client-1", domain.OAuthToken{AccessToken: "at"}))

	got, err := store.Load(ctx, "client-1")
	require.NoError(t, err)
	got.AccessToken = "mutated"

	again, err := store.Load(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "at", again.AccessToken)
}

func TestTokenStore_SaveEmptyClientID(t *testing.T) {
	err := NewTokenStore().Save(context.Background(), "", domain.OAuthToken{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
