package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/canteen-backend/internal/domain/catalog"
	"github.com/your-org/canteen-backend/internal/domain/user"
	"github.com/your-org/canteen-backend/internal/infrastructure/storage"
	"github.com/your-org/canteen-backend/internal/pkg/auth"
	"github.com/your-org/canteen-backend/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func newTestRegistry(t *testing.T, kv storage.Store, maxClients int) *Registry {
	t.Helper()
	passwords := auth.NewPasswordManagerWithCost(bcrypt.MinCost)
	dir, err := user.NewDemoDirectory(passwords)
	require.NoError(t, err)

	return NewRegistry(Dependencies{
		Storage:    kv,
		Directory:  dir,
		Passwords:  passwords,
		Tokens:     auth.NewTokenManager("0123456789abcdef0123456789abcdef", "test"),
		Logger:     logger.Discard(),
		MaxClients: maxClients,
	})
}

// get acquires and immediately releases a workspace
func get(t *testing.T, r *Registry, clientID string) *Workspace {
	t.Helper()
	ws, release, err := r.Acquire(context.Background(), clientID)
	require.NoError(t, err)
	release()
	return ws
}

func TestRegistry_SameClientSameWorkspace(t *testing.T) {
	r := newTestRegistry(t, storage.NewMemoryStore(), 0)

	a := get(t, r, "alice")
	again := get(t, r, "alice")

	assert.Same(t, a, again)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ClientsAreIsolated(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	r := newTestRegistry(t, kv, 0)

	alice := get(t, r, "alice")
	bob := get(t, r, "bob")

	_, err := alice.Cart.AddItemByID(ctx, "drink-water", 2)
	require.NoError(t, err)
	alice.Theme.ToggleDarkMode(ctx)

	assert.Equal(t, 2, alice.Cart.TotalItems())
	assert.Equal(t, 0, bob.Cart.TotalItems())
	assert.True(t, bob.Theme.DarkMode())
	assert.NotEqual(t, alice.Auth.Token(), bob.Auth.Token())
	assert.False(t, bob.Auth.VerifyToken(alice.Auth.Token()))

	_, err = kv.Get(ctx, "client:alice:cart")
	assert.NoError(t, err)
}

func TestRegistry_EvictedWorkspaceIsRebuiltFromStorage(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t, storage.NewMemoryStore(), 2)

	alice := get(t, r, "alice")
	water, _ := catalog.ByID("drink-water")
	alice.Cart.AddItem(ctx, water, 1)
	number := alice.Cart.PlaceOrder(ctx)
	alice.Cart.AddItem(ctx, water, 3)
	alice.Cart.SetIncludesBag(ctx, true)
	alice.Theme.ToggleDarkMode(ctx)
	_, err := alice.Auth.Login(ctx, "student@example.com", "password123")
	require.NoError(t, err)

	get(t, r, "s1")
	get(t, r, "s2")
	assert.Equal(t, 2, r.Len())

	rebuilt := get(t, r, "alice")
	assert.NotSame(t, alice, rebuilt)

	assert.Equal(t, 3, rebuilt.Cart.TotalItems())
	assert.True(t, rebuilt.Cart.IncludesBag())
	last, ok := rebuilt.Cart.LastOrderNumber()
	require.True(t, ok)
	assert.Equal(t, number, last)
	assert.False(t, rebuilt.Theme.DarkMode())

	u, ok := rebuilt.Auth.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, "student@example.com", u.Email)

	// the anti-forgery token lives in memory only and is reissued
	assert.False(t, rebuilt.Auth.VerifyToken(alice.Auth.Token()))
	assert.True(t, rebuilt.Auth.VerifyToken(rebuilt.Auth.Token()))
}

func TestRegistry_HeldWorkspaceIsNotEvicted(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t, storage.NewMemoryStore(), 1)

	alice, release, err := r.Acquire(ctx, "alice")
	require.NoError(t, err)

	get(t, r, "s1")
	get(t, r, "s2")
	assert.Same(t, alice, get(t, r, "alice"))

	release()
	release() // releasing twice is harmless
	get(t, r, "s3")
	assert.Equal(t, 1, r.Len())
	assert.NotSame(t, alice, get(t, r, "alice"))
}

func TestRegistry_RequiresClientID(t *testing.T) {
	r := newTestRegistry(t, storage.NewMemoryStore(), 0)
	_, _, err := r.Acquire(context.Background(), "")
	assert.Error(t, err)
}
