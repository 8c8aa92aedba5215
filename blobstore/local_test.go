package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/spz/errs"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	exists, err := store.Exists(ctx, "scenes/room.spz")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = store.Get(ctx, "scenes/room.spz")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, errs.ErrIO)

	require.NoError(t, store.Put(ctx, "scenes/room.spz", []byte("first")))
	require.NoError(t, store.Put(ctx, "scenes/room.spz", []byte("second")))

	exists, err = store.Exists(ctx, "scenes/room.spz")
	require.NoError(t, err)
	require.True(t, exists)

	data, err := store.Get(ctx, "scenes/room.spz")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), data)

	require.NoError(t, store.Delete(ctx, "scenes/room.spz"))
	require.NoError(t, store.Delete(ctx, "scenes/room.spz"))

	exists, err = store.Exists(ctx, "scenes/room.spz")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLocalStore_RejectsEscapingNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	for _, name := range []string{"", ".", "..", "../x.spz", "/etc/passwd"} {
		_, err := store.Path(name)
		require.Error(t, err, name)
	}

	p, err := store.Path("a/../b.spz")
	require.NoError(t, err)
	require.Contains(t, p, "b.spz")
}

func TestLocalStore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewLocalStore(t.TempDir())
	require.ErrorIs(t, store.Put(ctx, "a.spz", []byte("x")), context.Canceled)

	_, err := store.Get(ctx, "a.spz")
	require.ErrorIs(t, err, context.Canceled)
}
