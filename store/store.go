package store

import (
	"context"
	"time"

	"github.com/wordtrail/wordtrail/internal/profile"
	"github.com/wordtrail/wordtrail/store/cache"
)

// wordSnapshotKey is the cache key holding the full word snapshot.
const wordSnapshotKey = "words/all"

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Cache settings
	cacheConfig cache.Config

	// wordCache holds a full snapshot of all words with a short TTL. Every
	// mutating operation invalidates it; correctness-critical counts bypass
	// it explicitly.
	wordCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	// Default cache settings
	cacheConfig := cache.Config{
		DefaultTTL:      5 * time.Minute,
		CleanupInterval: time.Minute,
		MaxItems:        16,
		OnEviction:      nil,
	}

	store := &Store{
		driver:      driver,
		profile:     profile,
		cacheConfig: cacheConfig,
		wordCache:   cache.New(cacheConfig),
	}

	return store
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	// Stop the cache cleanup goroutine
	s.wordCache.Close()

	return s.driver.Close()
}

func (s *Store) invalidateWordCache(ctx context.Context) {
	s.wordCache.Delete(ctx, wordSnapshotKey)
}
