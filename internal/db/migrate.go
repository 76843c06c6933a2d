package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/snakegame/leaderboard/internal/models"
)

// Migrate creates or updates the schema for all application models. The
// unique index on admins.username is part of the model definition, so the
// store enforces username uniqueness.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if err := conn.AutoMigrate(
		&models.Score{},
		&models.Admin{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
