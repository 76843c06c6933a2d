package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/snakegame/leaderboard/internal/models"
)

// The snapshot is process-global, so these tests stay serial.
func setupSettingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:settings_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := conn.AutoMigrate(&models.Setting{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return conn
}

func TestSeedWritesDefaults(t *testing.T) {
	conn := setupSettingsTestDB(t)

	if errSeed := Seed(context.Background(), conn); errSeed != nil {
		t.Fatalf("seed: %v", errSeed)
	}
	if got := Title(); got != DefaultTitle {
		t.Fatalf("title = %q, want %q", got, DefaultTitle)
	}
	if got := TopSize(); got != DefaultTopSize {
		t.Fatalf("top size = %d, want %d", got, DefaultTopSize)
	}

	// Seeding twice must not overwrite existing rows.
	if errSet := Set(context.Background(), conn, TopSizeKey, 25); errSet != nil {
		t.Fatalf("set: %v", errSet)
	}
	if errSeed := Seed(context.Background(), conn); errSeed != nil {
		t.Fatalf("reseed: %v", errSeed)
	}
	if got := TopSize(); got != 25 {
		t.Fatalf("reseed overwrote top size: %d", got)
	}
}

func TestSetRefreshesSnapshot(t *testing.T) {
	conn := setupSettingsTestDB(t)
	if errSeed := Seed(context.Background(), conn); errSeed != nil {
		t.Fatalf("seed: %v", errSeed)
	}

	if errSet := Set(context.Background(), conn, TitleKey, "Weekly Cup"); errSet != nil {
		t.Fatalf("set: %v", errSet)
	}
	if got := Title(); got != "Weekly Cup" {
		t.Fatalf("title = %q, want %q", got, "Weekly Cup")
	}
	if UpdatedAt().IsZero() {
		t.Fatalf("expected a non-zero snapshot timestamp")
	}
}

func TestGettersFallBackOnBadValues(t *testing.T) {
	conn := setupSettingsTestDB(t)

	rows := []models.Setting{
		{Key: TitleKey, Value: []byte(`123`), UpdatedAt: time.Now().UTC()},
		{Key: TopSizeKey, Value: []byte(`"lots"`), UpdatedAt: time.Now().UTC()},
	}
	for _, row := range rows {
		if errCreate := conn.Create(&row).Error; errCreate != nil {
			t.Fatalf("create setting: %v", errCreate)
		}
	}
	if errRefresh := Refresh(context.Background(), conn); errRefresh != nil {
		t.Fatalf("refresh: %v", errRefresh)
	}

	if got := Title(); got != DefaultTitle {
		t.Fatalf("title fallback = %q, want %q", got, DefaultTitle)
	}
	if got := TopSize(); got != DefaultTopSize {
		t.Fatalf("top size fallback = %d, want %d", got, DefaultTopSize)
	}
}

func TestValueIsACopy(t *testing.T) {
	raw := json.RawMessage(`"original"`)
	Store(time.Now(), map[string]json.RawMessage{TitleKey: raw})

	got, ok := Value(TitleKey)
	if !ok {
		t.Fatalf("expected a value")
	}
	got[1] = 'X'

	again, _ := Value(TitleKey)
	if string(again) != `"original"` {
		t.Fatalf("snapshot mutated through returned value: %s", again)
	}
}
