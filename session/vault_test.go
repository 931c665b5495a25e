package session

import (
	"context"
	"sync"
	"testing"

	"github.com/octabyte/skillswap-client/enums"
	"github.com/octabyte/skillswap-client/models"
	"github.com/octabyte/skillswap-client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultRoundTrip(t *testing.T) {
	ctx := context.Background()
	vault := NewVault(storage.NewMemory())

	_, found, err := vault.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	saved := models.Session{AccessToken: "a", RefreshToken: "r", User: mustUser(`{"id":"u1"}`)}
	require.NoError(t, vault.Save(ctx, saved))

	loaded, found, err := vault.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a", loaded.AccessToken)
	assert.Equal(t, "r", loaded.RefreshToken)
	assert.Equal(t, "u1", loaded.User.ID())

	require.NoError(t, vault.Save(ctx, models.Session{AccessToken: "b", User: saved.User}))
	loaded, _, err = vault.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.RefreshToken, "saving without a refresh token erases the old one")
}

func TestVaultTakeRedirect(t *testing.T) {
	ctx := context.Background()
	vault := NewVault(storage.NewMemory())

	_, ok, err := vault.TakeRedirect(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, vault.RememberRedirect(ctx, "/sessions"))

	var wg sync.WaitGroup
	var mu sync.Mutex
	taken := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, err := vault.TakeRedirect(ctx); err == nil && ok {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, taken)
}

func TestVaultClear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	vault := NewVault(store)

	require.NoError(t, vault.Save(ctx, models.Session{AccessToken: "a", RefreshToken: "r", User: mustUser(`{"id":"u1"}`)}))
	require.NoError(t, vault.RememberRedirect(ctx, "/x"))
	require.NoError(t, storage.Set(ctx, store, "unrelated", "kept"))

	require.NoError(t, vault.Clear(ctx))
	for _, key := range append(enums.SessionStorageKeys, enums.StorageKeyLoginRedirect) {
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
	assert.Equal(t, 1, store.Len())
}

func TestVaultClearSessionKeepsRedirect(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	vault := NewVault(store)

	require.NoError(t, vault.Save(ctx, models.Session{AccessToken: "a", RefreshToken: "r", User: mustUser(`{"id":"u1"}`)}))
	require.NoError(t, vault.RememberRedirect(ctx, "/x"))

	require.NoError(t, vault.ClearSession(ctx))
	for _, key := range enums.SessionStorageKeys {
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}

	target, ok, err := vault.TakeRedirect(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/x", target)
}
