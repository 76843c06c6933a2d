package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/snakegame/leaderboard/internal/models"
)

// Refresh reloads all settings from the database and updates the in-memory
// snapshot.
//
// This is required at process startup; otherwise Value() will return empty
// values until an admin updates settings via the API (which triggers refresh).
func Refresh(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("settings: nil db")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var rows []models.Setting
	if errFind := db.WithContext(ctx).
		Select("key", "value", "updated_at").
		Order("key ASC").
		Find(&rows).Error; errFind != nil {
		return errFind
	}

	values := make(map[string]json.RawMessage, len(rows))
	maxUpdatedAt := time.Time{}
	for _, row := range rows {
		key := strings.TrimSpace(row.Key)
		if key == "" {
			continue
		}
		values[key] = json.RawMessage(row.Value)
		if rowUpdatedAt := row.UpdatedAt.UTC(); rowUpdatedAt.After(maxUpdatedAt) {
			maxUpdatedAt = rowUpdatedAt
		}
	}

	Store(maxUpdatedAt, values)
	return nil
}

// Set upserts a single setting row and refreshes the snapshot.
func Set(ctx context.Context, db *gorm.DB, key string, value any) error {
	if db == nil {
		return errors.New("settings: nil db")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("settings: empty key")
	}

	encoded, errEncode := json.Marshal(value)
	if errEncode != nil {
		return fmt.Errorf("settings: encode %s: %w", key, errEncode)
	}

	row := models.Setting{Key: key, Value: encoded, UpdatedAt: time.Now().UTC()}
	if errSave := db.WithContext(ctx).Save(&row).Error; errSave != nil {
		return fmt.Errorf("settings: save %s: %w", key, errSave)
	}
	return Refresh(ctx, db)
}

// Seed writes default values for settings that have no row yet.
func Seed(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("settings: nil db")
	}

	defaults := map[string]any{
		TitleKey:   DefaultTitle,
		TopSizeKey: DefaultTopSize,
	}
	for key, value := range defaults {
		var existing models.Setting
		errFind := db.WithContext(ctx).Where("key = ?", key).First(&existing).Error
		if errFind == nil {
			continue
		}
		if !errors.Is(errFind, gorm.ErrRecordNotFound) {
			return fmt.Errorf("settings: check %s: %w", key, errFind)
		}

		encoded, errEncode := json.Marshal(value)
		if errEncode != nil {
			return fmt.Errorf("settings: encode %s: %w", key, errEncode)
		}
		row := models.Setting{Key: key, Value: encoded, UpdatedAt: time.Now().UTC()}
		if errCreate := db.WithContext(ctx).Create(&row).Error; errCreate != nil {
			return fmt.Errorf("settings: seed %s: %w", key, errCreate)
		}
	}

	return Refresh(ctx, db)
}
