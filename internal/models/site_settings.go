// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package models

import "time"

// SiteSettings is the singleton row of site-wide SEO configuration,
// editable from the admin settings page.
type SiteSettings struct {
	SiteTitle         string    `json:"site_title"`
	SiteDescription   string    `json:"site_description"`
	DefaultOGImageURL *string   `json:"default_og_image_url,omitempty"`
	AnalyticsID       *string   `json:"analytics_id,omitempty"`
	RobotsTxt         *string   `json:"robots_txt,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}
