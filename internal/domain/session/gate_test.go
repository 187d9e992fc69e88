package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*MemoryStore
	getErr, setErr, clearErr error
}

func (s failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s failingStore) Set(ctx context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s failingStore) Clear(ctx context.Context, key string) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	return s.MemoryStore.Clear(ctx, key)
}

func TestLoginWithMatchingSecret(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	g, err := NewGate(ctx, "s3cret", store)
	require.NoError(t, err)
	assert.Equal(t, Anonymous, g.State())

	ok, err := g.Login(ctx, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, g.IsAuthenticated())

	v, found, _ := store.Get(ctx, FlagKey)
	assert.True(t, found)
	assert.Equal(t, "true", v)
}

func TestLoginMismatchStaysAnonymous(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	g, err := NewGate(ctx, "s3cret", store)
	require.NoError(t, err)

	for _, pw := range []string{"", "S3cret", "s3cret ", "wrong"} {
		ok, err := g.Login(ctx, pw)
		require.NoError(t, err)
		assert.False(t, ok, "password %q", pw)
	}
	assert.False(t, g.IsAuthenticated())
	_, found, _ := store.Get(ctx, FlagKey)
	assert.False(t, found)
}

func TestEmptySecretNeverAuthenticates(t *testing.T) {
	ctx := context.Background()
	g, err := NewGate(ctx, "", NewMemoryStore())
	require.NoError(t, err)

	ok, err := g.Login(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, g.IsAuthenticated())
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	g, _ := NewGate(ctx, "pw", store)
	_, err := g.Login(ctx, "pw")
	require.NoError(t, err)

	reloaded, err := NewGate(ctx, "pw", store)
	require.NoError(t, err)
	assert.True(t, reloaded.IsAuthenticated())

	require.NoError(t, reloaded.Logout(ctx))
	assert.False(t, reloaded.IsAuthenticated())

	again, err := NewGate(ctx, "pw", store)
	require.NoError(t, err)
	assert.False(t, again.IsAuthenticated())
}

func TestForeignFlagValueIsIgnored(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, FlagKey, "yes"))

	g, err := NewGate(ctx, "pw", store)
	require.NoError(t, err)
	assert.False(t, g.IsAuthenticated())
}

func TestStoreFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := NewGate(ctx, "pw", failingStore{MemoryStore: NewMemoryStore(), getErr: boom})
	assert.ErrorIs(t, err, boom)

	g, err := NewGate(ctx, "pw", failingStore{MemoryStore: NewMemoryStore(), setErr: boom})
	require.NoError(t, err)
	ok, err := g.Login(ctx, "pw")
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
	assert.False(t, g.IsAuthenticated())

	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, FlagKey, "true"))
	g, err = NewGate(ctx, "pw", failingStore{MemoryStore: store, clearErr: boom})
	require.NoError(t, err)
	assert.ErrorIs(t, g.Logout(ctx), boom)
	assert.False(t, g.IsAuthenticated(), "logout always leaves the gate anonymous")
}
