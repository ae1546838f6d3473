package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveMoveDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	ctx := context.Background()
	content := "fake image bytes"

	err = store.Save(ctx, AreaPending, "img.jpg", strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	exists, err := store.Exists(ctx, AreaPending, "img.jpg")
	require.NoError(t, err)
	require.True(t, exists)

	// Content round-trips
	f, err := os.Open(filepath.Join(root, "pending", "img.jpg"))
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	require.Equal(t, content, string(data))

	// Move to approved
	require.NoError(t, store.Move(ctx, AreaPending, AreaApproved, "img.jpg"))

	exists, err = store.Exists(ctx, AreaPending, "img.jpg")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = store.Exists(ctx, AreaApproved, "img.jpg")
	require.NoError(t, err)
	require.True(t, exists)

	// Delete
	require.NoError(t, store.Delete(ctx, AreaApproved, "img.jpg"))
	exists, err = store.Exists(ctx, AreaApproved, "img.jpg")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLocalStore_DeleteMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	err = store.Delete(context.Background(), AreaPending, "nope.jpg")
	require.ErrorIs(t, err, ErrBlobNotFound)
}

func TestLocalStore_MoveMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	err = store.Move(context.Background(), AreaPending, AreaApproved, "nope.jpg")
	require.Error(t, err)
}

func TestLocalStore_PathTraversalStripped(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	ctx := context.Background()
	err = store.Save(ctx, AreaPending, "../escape.jpg", strings.NewReader("x"), 1)
	require.NoError(t, err)

	// The blob lands inside the area directory regardless of the name
	_, err = os.Stat(filepath.Join(root, "pending", "escape.jpg"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escape.jpg"))
	require.True(t, os.IsNotExist(err))
}
