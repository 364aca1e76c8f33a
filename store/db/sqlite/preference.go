package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wordtrail/wordtrail/store"
)

func (d *DB) UpsertPreference(ctx context.Context, upsert *store.UpsertPreference) (*store.Preference, error) {
	now := time.Now().Unix()
	stmt := `INSERT INTO preference (key, value, updated_ts)
		VALUES (` + placeholders(3) + `)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_ts = excluded.updated_ts`

	if _, err := d.db.ExecContext(ctx, stmt, upsert.Key, upsert.Value, now); err != nil {
		return nil, fmt.Errorf("failed to upsert preference: %w", err)
	}

	return &store.Preference{
		Key:       upsert.Key,
		Value:     upsert.Value,
		UpdatedTs: now,
	}, nil
}

func (d *DB) GetPreference(ctx context.Context, find *store.FindPreference) (*store.Preference, error) {
	query := `SELECT key, value, updated_ts FROM preference WHERE key = ?`

	var preference store.Preference
	if err := d.db.QueryRowContext(ctx, query, find.Key).Scan(
		&preference.Key,
		&preference.Value,
		&preference.UpdatedTs,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}
	return &preference, nil
}
