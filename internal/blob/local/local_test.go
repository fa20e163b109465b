package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoon-dev/skigallery/internal/blob"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestPutAndOpen(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	content := "fake png bytes"
	err := s.Put(ctx, "user-uploads/a.png", strings.NewReader(content), int64(len(content)), blob.PutOptions{ContentType: "image/png"})
	require.NoError(t, err)

	rc, contentType, err := s.Open(ctx, "user-uploads/a.png")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, rc.Close()) })

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	assert.Equal(t, "image/png", contentType)
}

func TestPutRefusesOverwrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.jpg", strings.NewReader("one"), 3, blob.PutOptions{}))
	err := s.Put(ctx, "a.jpg", strings.NewReader("two"), 3, blob.PutOptions{})
	assert.ErrorIs(t, err, blob.ErrExists)

	rc, _, err := s.Open(ctx, "a.jpg")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, rc.Close()) })
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.jpg", strings.NewReader("x"), 1, blob.PutOptions{}))
	require.NoError(t, s.Remove(ctx, "a.jpg"))

	_, _, err := s.Open(ctx, "a.jpg")
	assert.Error(t, err)

	// Removing something already gone is not an error.
	assert.NoError(t, s.Remove(ctx, "a.jpg"))
}

func TestRejectsTraversal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Put(ctx, "../escape.jpg", strings.NewReader("x"), 1, blob.PutOptions{})
	assert.Error(t, err)

	_, _, err = s.Open(ctx, "../../etc/passwd")
	assert.Error(t, err)
}
