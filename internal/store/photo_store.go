package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoon-dev/skigallery/internal/domain"
)

// PhotoStore is the photos record table.
type PhotoStore struct {
	db *sql.DB
}

func NewPhotoStore(db *sql.DB) *PhotoStore {
	return &PhotoStore{db: db}
}

// Insert creates a record from photo's src, description and owner snapshot
// fields and returns the stored row with its assigned id and timestamps.
func (s *PhotoStore) Insert(ctx context.Context, photo domain.Photo) (*domain.Photo, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO photos (src, description, user_id, user_name, user_email)
		VALUES (?, ?, ?, ?, ?)
	`, photo.Src, photo.Description, photo.UserID, photo.UserName, photo.UserEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to insert photo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns the photo with the given id, or nil when it does not exist.
func (s *PhotoStore) GetByID(ctx context.Context, id int64) (*domain.Photo, error) {
	photo := &domain.Photo{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, src, description, user_id, user_name, user_email, created_at, updated_at
		FROM photos WHERE id = ?
	`, id).Scan(&photo.ID, &photo.Src, &photo.Description, &photo.UserID,
		&photo.UserName, &photo.UserEmail, &photo.CreatedAt, &photo.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return photo, nil
}

// List returns every photo, newest first. Rows created within the same second
// are tie-broken by id so ordering stays stable.
func (s *PhotoStore) List(ctx context.Context) ([]domain.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, src, description, user_id, user_name, user_email, created_at, updated_at
		FROM photos ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		var photo domain.Photo
		if err := rows.Scan(&photo.ID, &photo.Src, &photo.Description, &photo.UserID,
			&photo.UserName, &photo.UserEmail, &photo.CreatedAt, &photo.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read photos: %w", err)
	}

	return photos, nil
}

// OwnerID returns the user_id of the photo with the given id, or "" when the
// photo does not exist.
func (s *PhotoStore) OwnerID(ctx context.Context, id int64) (string, error) {
	var ownerID string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id FROM photos WHERE id = ?
	`, id).Scan(&ownerID)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get photo owner: %w", err)
	}

	return ownerID, nil
}

// DeleteOwned deletes the photo only when both id and owner match. A filter
// that matches nothing is not an error; the record is gone either way.
func (s *PhotoStore) DeleteOwned(ctx context.Context, id int64, ownerID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM photos WHERE id = ? AND user_id = ?
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}
