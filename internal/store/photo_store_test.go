package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoon-dev/skigallery/internal/db"
	"github.com/jmoon-dev/skigallery/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })
	return d
}

func TestPhotoStoreInsert(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))
	ctx := context.Background()

	photo, err := photos.Insert(ctx, domain.Photo{
		Src:         "http://localhost:8080/storage/v1/object/public/photos/user-uploads/a.jpg",
		Description: "trip photo",
		UserID:      "u1",
		UserName:    "Jae",
		UserEmail:   "jae@example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, photo.ID)
	assert.Equal(t, "trip photo", photo.Description)
	assert.Equal(t, "u1", photo.UserID)
	assert.Equal(t, "Jae", photo.UserName)
	assert.False(t, photo.CreatedAt.IsZero())
}

func TestPhotoStoreListNewestFirst(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))
	ctx := context.Background()

	first, err := photos.Insert(ctx, domain.Photo{Src: "a", Description: "first", UserID: "u1"})
	require.NoError(t, err)
	second, err := photos.Insert(ctx, domain.Photo{Src: "b", Description: "second", UserID: "u1"})
	require.NoError(t, err)

	listed, err := photos.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	// Same-second inserts fall back to id ordering.
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}

func TestPhotoStoreListEmpty(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))

	listed, err := photos.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestPhotoStoreOwnerID(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))
	ctx := context.Background()

	photo, err := photos.Insert(ctx, domain.Photo{Src: "a", Description: "d", UserID: "u1"})
	require.NoError(t, err)

	owner, err := photos.OwnerID(ctx, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", owner)

	owner, err = photos.OwnerID(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, owner)
}

func TestPhotoStoreDeleteOwned(t *testing.T) {
	photos := NewPhotoStore(openTestDB(t))
	ctx := context.Background()

	photo, err := photos.Insert(ctx, domain.Photo{Src: "a", Description: "d", UserID: "u1"})
	require.NoError(t, err)

	// Mismatched owner must leave the row untouched.
	require.NoError(t, photos.DeleteOwned(ctx, photo.ID, "u2"))
	remaining, err := photos.GetByID(ctx, photo.ID)
	require.NoError(t, err)
	require.NotNil(t, remaining)

	require.NoError(t, photos.DeleteOwned(ctx, photo.ID, "u1"))
	remaining, err = photos.GetByID(ctx, photo.ID)
	require.NoError(t, err)
	assert.Nil(t, remaining)
}
