// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"mozaik/internal/models"
)

// AuthorStore manages author bylines in the database.
type AuthorStore struct {
	db *sql.DB
}

// NewAuthorStore returns a new AuthorStore.
func NewAuthorStore(db *sql.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

const authorColumns = `id, name, bio, avatar_media_id, social_links, created_at, updated_at`

// scanAuthor scans a row into an Author struct.
func scanAuthor(scanner interface{ Scan(...any) error }) (*models.Author, error) {
	var a models.Author
	var links []byte
	err := scanner.Scan(
		&a.ID, &a.Name, &a.Bio, &a.AvatarMediaID, &links, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(links) > 0 {
		var sl models.SocialLinks
		if err := json.Unmarshal(links, &sl); err == nil {
			a.SocialLinks = &sl
		}
	}
	return &a, nil
}

// marshalLinks serializes social links for the jsonb column; nil
// becomes SQL NULL.
func marshalLinks(links *models.SocialLinks) (any, error) {
	if links == nil {
		return nil, nil
	}
	b, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("marshal social links: %w", err)
	}
	return b, nil
}

// List returns all authors ordered by name.
func (s *AuthorStore) List() ([]models.Author, error) {
	rows, err := s.db.Query(`SELECT ` + authorColumns + ` FROM authors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var items []models.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindByID retrieves an author by ID. Returns nil if not found.
func (s *AuthorStore) FindByID(id uuid.UUID) (*models.Author, error) {
	row := s.db.QueryRow(`SELECT `+authorColumns+` FROM authors WHERE id = $1`, id)
	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return a, nil
}

// Create inserts a new author and returns it.
func (s *AuthorStore) Create(a *models.Author) (*models.Author, error) {
	links, err := marshalLinks(a.SocialLinks)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		INSERT INTO authors (name, bio, avatar_media_id, social_links)
		VALUES ($1, $2, $3, $4)
		RETURNING `+authorColumns,
		a.Name, a.Bio, a.AvatarMediaID, links,
	)
	result, err := scanAuthor(row)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return result, nil
}

// Update modifies an existing author.
func (s *AuthorStore) Update(a *models.Author) error {
	links, err := marshalLinks(a.SocialLinks)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE authors SET
			name = $1, bio = $2, avatar_media_id = $3, social_links = $4, updated_at = NOW()
		WHERE id = $5
	`, a.Name, a.Bio, a.AvatarMediaID, links, a.ID)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	return nil
}

// Delete removes an author by ID. Their articles keep publishing with
// no byline (ON DELETE SET NULL).
func (s *AuthorStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	return nil
}
