// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mozaik/internal/models"
)

// ArticleStore handles all article-related database operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, title, slug, body, excerpt, featured_image_id,
	featured_video, media_type, category_id, author_id, meta_title,
	meta_description, status, published_at, created_at, updated_at`

// scanArticle scans a row into an Article struct.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Body, &a.Excerpt, &a.FeaturedImageID,
		&a.FeaturedVideo, &a.MediaType, &a.CategoryID, &a.AuthorID, &a.MetaTitle,
		&a.MetaDescription, &a.Status, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListOptions narrows a published-article listing: the category id set
// to match, an optional title search, and 1-based pagination.
type ListOptions struct {
	CategoryIDs []uuid.UUID
	TitleQuery  string
	Page        int
	PageSize    int
}

// ListPublished returns published articles newest first, narrowed by
// the options, along with the total match count for pagination. An
// empty CategoryIDs set means "all published articles".
func (s *ArticleStore) ListPublished(opts ListOptions) ([]models.Article, int, error) {
	where := []string{`status = 'published'`}
	var args []any

	if len(opts.CategoryIDs) > 0 {
		placeholders := make([]string, len(opts.CategoryIDs))
		for i, id := range opts.CategoryIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		where = append(where, fmt.Sprintf("category_id IN (%s)", strings.Join(placeholders, ", ")))
	}

	if opts.TitleQuery != "" {
		args = append(args, "%"+opts.TitleQuery+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count published articles: %w", err)
	}

	query := `SELECT ` + articleColumns + ` FROM articles WHERE ` + cond +
		` ORDER BY published_at DESC NULLS LAST`

	if opts.PageSize > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		args = append(args, opts.PageSize)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (page-1)*opts.PageSize)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list published articles: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, total, rows.Err()
}

// List returns all articles regardless of status, newest first. Used by
// the admin articles table.
func (s *ArticleStore) List() ([]models.Article, error) {
	rows, err := s.db.Query(`SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// ListFiltered returns articles for the admin table, optionally
// narrowed by status and category. Zero values mean no filter.
func (s *ArticleStore) ListFiltered(status models.ArticleStatus, categoryID *uuid.UUID) ([]models.Article, error) {
	where := []string{"TRUE"}
	var args []any

	if status != "" {
		args = append(args, status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if categoryID != nil {
		args = append(args, *categoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}

	rows, err := s.db.Query(`SELECT `+articleColumns+` FROM articles WHERE `+
		strings.Join(where, " AND ")+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list filtered articles: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// FindPublishedBySlug retrieves a published article by slug with its
// category and author relations resolved. A deleted category leaves
// Category nil; the article still loads and renders with a
// placeholder label.
func (s *ArticleStore) FindPublishedBySlug(slug string) (*models.Article, error) {
	row := s.db.QueryRow(`
		SELECT a.id, a.title, a.slug, a.body, a.excerpt, a.featured_image_id,
		       a.featured_video, a.media_type, a.category_id, a.author_id,
		       a.meta_title, a.meta_description, a.status,
		       a.published_at, a.created_at, a.updated_at,
		       c.id, c.name, c.slug, c.description, c.parent_id, c.created_at, c.updated_at,
		       au.id, au.name, au.bio, au.avatar_media_id, au.social_links, au.created_at, au.updated_at
		FROM articles a
		LEFT JOIN categories c ON c.id = a.category_id
		LEFT JOIN authors au ON au.id = a.author_id
		WHERE a.slug = $1 AND a.status = 'published'
	`, slug)

	var a models.Article
	var c nullCategory
	var au nullAuthor
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Body, &a.Excerpt, &a.FeaturedImageID,
		&a.FeaturedVideo, &a.MediaType, &a.CategoryID, &a.AuthorID,
		&a.MetaTitle, &a.MetaDescription, &a.Status,
		&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt,
		&au.ID, &au.Name, &au.Bio, &au.AvatarMediaID, &au.SocialLinks, &au.CreatedAt, &au.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}

	a.Category = c.toModel()
	a.Author = au.toModel()
	return &a, nil
}

// Create inserts a new article and returns it with the generated ID.
// Publishing stamps published_at when not already set.
func (s *ArticleStore) Create(a *models.Article) (*models.Article, error) {
	applyPublishedAt(a)
	if a.MediaType == "" {
		a.MediaType = models.MediaTypeImage
	}

	row := s.db.QueryRow(`
		INSERT INTO articles (title, slug, body, excerpt, featured_image_id,
		                      featured_video, media_type, category_id, author_id,
		                      meta_title, meta_description, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+articleColumns,
		a.Title, a.Slug, a.Body, a.Excerpt, a.FeaturedImageID,
		a.FeaturedVideo, a.MediaType, a.CategoryID, a.AuthorID,
		a.MetaTitle, a.MetaDescription, a.Status, a.PublishedAt,
	)
	result, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return result, nil
}

// Update modifies an existing article, applying the published_at
// transition rules: publishing stamps the timestamp when unset,
// reverting to draft clears it, archiving leaves it untouched.
func (s *ArticleStore) Update(a *models.Article) error {
	applyPublishedAt(a)
	if a.MediaType == "" {
		a.MediaType = models.MediaTypeImage
	}

	_, err := s.db.Exec(`
		UPDATE articles SET
			title = $1, slug = $2, body = $3, excerpt = $4, featured_image_id = $5,
			featured_video = $6, media_type = $7, category_id = $8, author_id = $9,
			meta_title = $10, meta_description = $11, status = $12,
			published_at = $13, updated_at = NOW()
		WHERE id = $14
	`, a.Title, a.Slug, a.Body, a.Excerpt, a.FeaturedImageID,
		a.FeaturedVideo, a.MediaType, a.CategoryID, a.AuthorID,
		a.MetaTitle, a.MetaDescription, a.Status,
		a.PublishedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// Delete removes an article by ID.
func (s *ArticleStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// CountByCategory groups all articles by category_id and returns the
// counts keyed by id. Uncategorized articles (NULL category) are not
// included; absent categories count as 0 at the call site.
func (s *ArticleStore) CountByCategory() (map[uuid.UUID]int, error) {
	rows, err := s.db.Query(`
		SELECT category_id, COUNT(*)
		FROM articles
		WHERE category_id IS NOT NULL
		GROUP BY category_id
	`)
	if err != nil {
		return nil, fmt.Errorf("count articles by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// Count returns the total number of articles.
func (s *ArticleStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// Search returns published articles matching the query in title, body,
// or excerpt, newest first.
func (s *ArticleStore) Search(query string, limit int) ([]models.Article, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT `+articleColumns+` FROM articles
		WHERE status = 'published'
		  AND (title ILIKE $1 OR body ILIKE $1 OR excerpt ILIKE $1)
		ORDER BY published_at DESC NULLS LAST
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// applyPublishedAt implements the status transition rules for the
// published_at column.
func applyPublishedAt(a *models.Article) {
	switch a.Status {
	case models.ArticleStatusPublished:
		if a.PublishedAt == nil {
			now := time.Now()
			a.PublishedAt = &now
		}
	case models.ArticleStatusDraft:
		a.PublishedAt = nil
	case models.ArticleStatusArchived:
		// Archived articles keep their historical publish date.
	}
}
