package store

import (
	"context"
)

// Preference keys used by the achievement tracker. Achievement state lives in
// the preference store as JSON blobs, deliberately independent from the word
// tables.
const (
	PreferenceKeyAchievements = "achievements"
	PreferenceKeyGameRecords  = "game_records"
)

// Preference is a serialized key-value document.
type Preference struct {
	Key       string
	Value     string // JSON string
	UpdatedTs int64
}

// FindPreference specifies the conditions for finding a preference.
type FindPreference struct {
	Key string
}

// UpsertPreference specifies the data for upserting a preference.
type UpsertPreference struct {
	Key   string
	Value string // JSON string
}

// UpsertPreference writes a preference document.
func (s *Store) UpsertPreference(ctx context.Context, upsert *UpsertPreference) (*Preference, error) {
	return s.driver.UpsertPreference(ctx, upsert)
}

// GetPreference reads a preference document. Returns nil when not found.
func (s *Store) GetPreference(ctx context.Context, find *FindPreference) (*Preference, error) {
	return s.driver.GetPreference(ctx, find)
}
