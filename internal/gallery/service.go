package gallery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmoon-dev/skigallery/internal/blob"
	"github.com/jmoon-dev/skigallery/internal/domain"
	"github.com/jmoon-dev/skigallery/internal/identity"
)

// uploadPrefix is the logical area of the blob namespace that holds
// user-submitted images.
const uploadPrefix = "user-uploads"

// photoRepository is the subset of store.PhotoStore that Service requires.
type photoRepository interface {
	List(ctx context.Context) ([]domain.Photo, error)
	Insert(ctx context.Context, photo domain.Photo) (*domain.Photo, error)
	OwnerID(ctx context.Context, id int64) (string, error)
	DeleteOwned(ctx context.Context, id int64, ownerID string) error
}

// blobStore is the subset of blob.Store that Service requires.
type blobStore interface {
	Put(ctx context.Context, path string, r io.Reader, size int64, opts blob.PutOptions) error
	Remove(ctx context.Context, paths ...string) error
}

// Service orchestrates the gallery's three operations against the record
// table, the blob namespace and the identity provider.
type Service struct {
	photos       photoRepository
	blobs        blobStore
	urls         blob.URLScheme
	ident        identity.Provider
	cacheControl string
	logger       *slog.Logger
}

func NewService(
	photos photoRepository,
	blobs blobStore,
	urls blob.URLScheme,
	ident identity.Provider,
	cacheControl string,
	logger *slog.Logger,
) *Service {
	return &Service{
		photos:       photos,
		blobs:        blobs,
		urls:         urls,
		ident:        ident,
		cacheControl: cacheControl,
		logger:       logger,
	}
}

// List returns every photo, newest first. Read failures and an empty table
// both degrade to the one-element fallback gallery; the boolean reports when
// that happened. List never returns an error.
func (s *Service) List(ctx context.Context) ([]domain.Photo, bool) {
	photos, err := s.photos.List(ctx)
	if err != nil {
		s.logger.Error("list photos failed, serving fallback", "error", err)
		return domain.FallbackPhotos(), true
	}
	if len(photos) == 0 {
		return domain.FallbackPhotos(), true
	}
	return photos, false
}

// Upload stores the image content and inserts its record. On success the
// returned record carries the uploader's display fields and avatar. If the
// record insert fails the just-written blob is removed best-effort so a retry
// does not collide with an orphan.
func (s *Service) Upload(ctx context.Context, filename, description string, content io.Reader, size int64, contentType string) (*domain.Photo, error) {
	ident, err := s.ident.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	path := deriveObjectPath(filename)

	err = s.blobs.Put(ctx, path, content, size, blob.PutOptions{
		ContentType:  contentType,
		CacheControl: s.cacheControl,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	src := s.urls.Public(path)

	photo, err := s.photos.Insert(ctx, domain.Photo{
		Src:         src,
		Description: description,
		UserID:      ident.ID,
		UserName:    ident.DisplayName(),
		UserEmail:   ident.Email,
	})
	if err != nil {
		if rerr := s.blobs.Remove(ctx, path); rerr != nil {
			s.logger.Error("failed to clean up uploaded blob", "path", path, "error", rerr)
		}
		return nil, fmt.Errorf("%w: %v", ErrRecordWrite, err)
	}

	photo.UserAvatar = ident.AvatarURL
	s.logger.Info("photo uploaded", "photo_id", photo.ID, "user_id", ident.ID, "path", path)
	return photo, nil
}

// Delete removes a photo the caller owns. The blob is deleted best-effort
// before the record; an unrecognizable src skips the blob step entirely. The
// record delete is filtered by owner as well as id so the store enforces
// ownership independently of the check here.
func (s *Service) Delete(ctx context.Context, id int64, src string) error {
	ident, err := s.ident.Current(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	ownerID, err := s.photos.OwnerID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if ownerID == "" {
		return ErrNotFound
	}
	if ownerID != ident.ID {
		return ErrForbidden
	}

	if path, ok := blob.ParsePublicURL(src); ok {
		if err := s.blobs.Remove(ctx, path); err != nil {
			s.logger.Warn("failed to delete blob, continuing", "path", path, "error", err)
		}
	} else {
		s.logger.Warn("unrecognized image URL, skipping blob delete", "photo_id", id, "src", src)
	}

	if err := s.photos.DeleteOwned(ctx, id, ident.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrRecordDelete, err)
	}

	s.logger.Info("photo deleted", "photo_id", id, "user_id", ident.ID)
	return nil
}

// deriveObjectPath builds a storage-unique name from the upload time and a
// random token, keeping the original extension. Uniqueness comes from the
// token; no existence round trip is needed.
func deriveObjectPath(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%d-%s%s", uploadPrefix, time.Now().UnixMilli(), uuid.NewString(), ext)
}
