package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wordtrail/wordtrail/internal/profile"
	"github.com/wordtrail/wordtrail/store"
	"github.com/wordtrail/wordtrail/store/db"
)

// NewTestingStore creates a throwaway sqlite-backed store with the full
// migration set applied.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	t.Helper()

	dir := t.TempDir()
	p := &profile.Profile{
		Mode:   "dev",
		Data:   dir,
		Driver: "sqlite",
		DSN:    filepath.Join(dir, "wordtrail_test.db"),
	}
	require.NoError(t, p.Validate())

	driver, err := db.NewDBDriver(p)
	require.NoError(t, err)

	ts := store.New(driver, p)
	require.NoError(t, ts.Migrate(ctx))
	t.Cleanup(func() {
		_ = ts.Close()
	})
	return ts
}

// CreateTestingWordbook creates a wordbook for store tests.
func CreateTestingWordbook(ctx context.Context, t *testing.T, ts *store.Store, name string) *store.Wordbook {
	t.Helper()
	wordbook, err := ts.CreateWordbook(ctx, &store.Wordbook{
		UID:  "test-" + name,
		Name: name,
	})
	require.NoError(t, err)
	return wordbook
}
