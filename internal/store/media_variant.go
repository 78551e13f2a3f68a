// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mozaik/internal/models"
)

// VariantStore manages responsive image variant metadata.
type VariantStore struct {
	db *sql.DB
}

// NewVariantStore returns a new VariantStore.
func NewVariantStore(db *sql.DB) *VariantStore {
	return &VariantStore{db: db}
}

const variantColumns = `id, media_id, name, width, s3_key, size_bytes, created_at`

// scanVariant scans a row into a MediaVariant struct.
func scanVariant(scanner interface{ Scan(...any) error }) (*models.MediaVariant, error) {
	var v models.MediaVariant
	err := scanner.Scan(
		&v.ID, &v.MediaID, &v.Name, &v.Width, &v.S3Key, &v.SizeBytes, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a variant record.
func (s *VariantStore) Create(v *models.MediaVariant) error {
	_, err := s.db.Exec(`
		INSERT INTO media_variants (media_id, name, width, s3_key, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
	`, v.MediaID, v.Name, v.Width, v.S3Key, v.SizeBytes)
	if err != nil {
		return fmt.Errorf("create media variant: %w", err)
	}
	return nil
}

// ListByMedia returns all variants of one media item, widest last.
func (s *VariantStore) ListByMedia(mediaID uuid.UUID) ([]models.MediaVariant, error) {
	rows, err := s.db.Query(`
		SELECT `+variantColumns+` FROM media_variants
		WHERE media_id = $1
		ORDER BY width
	`, mediaID)
	if err != nil {
		return nil, fmt.Errorf("list media variants: %w", err)
	}
	defer rows.Close()

	var items []models.MediaVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media variant: %w", err)
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

// ListByMediaIDs returns variants for a batch of media ids, grouped by
// media id. Used to build srcsets for article listings in one query.
func (s *VariantStore) ListByMediaIDs(mediaIDs []uuid.UUID) (map[uuid.UUID][]models.MediaVariant, error) {
	result := make(map[uuid.UUID][]models.MediaVariant)
	if len(mediaIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(mediaIDs))
	args := make([]any, len(mediaIDs))
	for i, id := range mediaIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := s.db.Query(`
		SELECT `+variantColumns+` FROM media_variants
		WHERE media_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY media_id, width
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list media variants batch: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media variant: %w", err)
		}
		result[v.MediaID] = append(result[v.MediaID], *v)
	}
	return result, rows.Err()
}

// DeleteByMedia removes all variant records of one media item.
func (s *VariantStore) DeleteByMedia(mediaID uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM media_variants WHERE media_id = $1`, mediaID)
	if err != nil {
		return fmt.Errorf("delete media variants: %w", err)
	}
	return nil
}
