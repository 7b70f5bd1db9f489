package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	missing, err := store.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Set(ctx, "tickets", []byte(`[{"id":"t-1"}]`)))

	got, err := store.Get(ctx, "tickets")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"t-1"}]`), got)

	require.NoError(t, store.Delete(ctx, "tickets"))
	gone, err := store.Get(ctx, "tickets")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", original))
	original[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	// Mutating the returned slice must not leak back into the store.
	got[0] = 'q'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
