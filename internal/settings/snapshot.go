package settings

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

// snapshot holds the in-memory DB-backed settings values.
type snapshot struct {
	updatedAt time.Time
	values    map[string]json.RawMessage
}

// globalSnapshot stores the latest snapshot atomically.
var globalSnapshot atomic.Value // stores snapshot

// init seeds the global snapshot.
func init() {
	globalSnapshot.Store(snapshot{values: map[string]json.RawMessage{}})
}

// Store replaces the in-memory snapshot of DB-backed settings.
func Store(updatedAt time.Time, values map[string]json.RawMessage) {
	next := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		if v == nil {
			next[key] = nil
			continue
		}
		copied := make([]byte, len(v))
		copy(copied, v)
		next[key] = copied
	}

	globalSnapshot.Store(snapshot{
		updatedAt: updatedAt.UTC(),
		values:    next,
	})
}

// UpdatedAt returns the last update timestamp for the snapshot.
func UpdatedAt() time.Time {
	return load().updatedAt
}

// Value returns a copy of the raw setting value for a key.
func Value(key string) (json.RawMessage, bool) {
	snap := load()
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}
	val, ok := snap.values[key]
	if !ok {
		return nil, false
	}
	if val == nil {
		return nil, true
	}
	copied := make([]byte, len(val))
	copy(copied, val)
	return copied, true
}

// Title returns the configured leaderboard title.
func Title() string {
	raw, ok := Value(TitleKey)
	if !ok {
		return DefaultTitle
	}
	var title string
	if errDecode := json.Unmarshal(raw, &title); errDecode != nil {
		return DefaultTitle
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return title
}

// TopSize returns the configured default top list length.
func TopSize() int {
	raw, ok := Value(TopSizeKey)
	if !ok {
		return DefaultTopSize
	}
	var size int
	if errDecode := json.Unmarshal(raw, &size); errDecode != nil {
		return DefaultTopSize
	}
	if size <= 0 || size > MaxTopSize {
		return DefaultTopSize
	}
	return size
}

// load returns the current snapshot with safe defaults.
func load() snapshot {
	v := globalSnapshot.Load()
	snap, ok := v.(snapshot)
	if !ok {
		return snapshot{values: map[string]json.RawMessage{}}
	}
	if snap.values == nil {
		return snapshot{updatedAt: snap.updatedAt, values: map[string]json.RawMessage{}}
	}
	return snap
}
