package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"mozaik/internal/slug"
)

// Seed populates the database with initial development data: a default
// admin user and the starter category taxonomy. It is a no-op when users
// already exist. The admin is prompted to set up 2FA on first login.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@mozaik.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if err := seedCategories(db); err != nil {
		return err
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@mozaik.local",
		"password", "admin",
	)

	return nil
}

// seedCategories inserts the starter two-level taxonomy. Child slugs
// follow the "{parent}-{local}" convention so tag tabs derive clean
// short slugs.
func seedCategories(db *sql.DB) error {
	parents := []struct {
		name, slug, description string
		children                []string
	}{
		{"Za mame od mame", "za-mame-od-mame", "Osobne priče i savjeti iz prve ruke", []string{"Trudnoća", "Dojenje"}},
		{"Zdravlje", "zdravlje", "Zdravlje obitelji i djece", []string{"Recepti", "Prva pomoć"}},
		{"Lifestyle", "lifestyle", "Obiteljski lifestyle", nil},
	}

	for _, p := range parents {
		var parentID string
		err := db.QueryRow(`
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3)
			RETURNING id
		`, p.name, p.slug, p.description).Scan(&parentID)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", p.slug, err)
		}

		for _, childName := range p.children {
			childSlug := slug.ForChild(p.slug, childName)
			_, err := db.Exec(`
				INSERT INTO categories (name, slug, parent_id)
				VALUES ($1, $2, $3)
			`, childName, childSlug, parentID)
			if err != nil {
				return fmt.Errorf("seed subcategory %s: %w", childSlug, err)
			}
		}
	}

	return nil
}
