// Package db stores rehearsal copies of request worksheets in SQLite so a
// set can be run through the dashboard without the Google Sheets API.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPath returns ~/.vibeque-hq/rehearsal.db, creating the directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".vibeque-hq")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "rehearsal.db"), nil
}

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	d, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := Migrate(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Migrate creates or updates the rehearsal tables.
func Migrate(d *gorm.DB) error {
	if err := d.AutoMigrate(&Worksheet{}, &SheetRow{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
