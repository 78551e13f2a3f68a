// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"mozaik/internal/models"
)

// SettingsStore manages the singleton site settings row.
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore returns a new SettingsStore.
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the site settings. The row is created by the initial
// migration, so a missing row is a real error.
func (s *SettingsStore) Get() (*models.SiteSettings, error) {
	var st models.SiteSettings
	err := s.db.QueryRow(`
		SELECT site_title, site_description, default_og_image_url,
		       analytics_id, robots_txt, updated_at
		FROM site_settings WHERE id = true
	`).Scan(
		&st.SiteTitle, &st.SiteDescription, &st.DefaultOGImageURL,
		&st.AnalyticsID, &st.RobotsTxt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}
	return &st, nil
}

// Update replaces the site settings.
func (s *SettingsStore) Update(st *models.SiteSettings) error {
	_, err := s.db.Exec(`
		UPDATE site_settings SET
			site_title = $1, site_description = $2, default_og_image_url = $3,
			analytics_id = $4, robots_txt = $5, updated_at = NOW()
		WHERE id = true
	`, st.SiteTitle, st.SiteDescription, st.DefaultOGImageURL, st.AnalyticsID, st.RobotsTxt)
	if err != nil {
		return fmt.Errorf("update site settings: %w", err)
	}
	return nil
}
