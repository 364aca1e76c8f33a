package store

import (
	"context"
	"database/sql"
	"time"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Word model related methods.
	CreateWords(ctx context.Context, wordbookID int32, creates []*Word) (int, error)
	ListWords(ctx context.Context, find *FindWord) ([]*Word, error)
	ListPlannedReviewWords(ctx context.Context, find *FindPlannedReview) ([]*Word, error)
	UpdateWordReview(ctx context.Context, update *UpdateWordReview) error
	SetWordFavorite(ctx context.Context, id int32, favorite bool) error
	SetWordErrorCount(ctx context.Context, id int32, count int) error
	ResetWordStatus(ctx context.Context, wordbookID *int32) (int64, error)
	DeleteWords(ctx context.Context, delete *DeleteWord) error
	CountWords(ctx context.Context, count *CountWord) (int, error)

	// Wordbook model related methods.
	CreateWordbook(ctx context.Context, create *Wordbook) (*Wordbook, error)
	ListWordbooks(ctx context.Context, find *FindWordbook) ([]*Wordbook, error)
	UpdateWordbook(ctx context.Context, update *UpdateWordbook) error
	SetActiveWordbook(ctx context.Context, id int32) error
	RecomputeWordbookStats(ctx context.Context, id int32, today time.Time) (*Wordbook, error)
	DeleteWordbook(ctx context.Context, delete *DeleteWordbook) error

	// LearningRecord model related methods.
	CreateLearningRecord(ctx context.Context, create *LearningRecord) (*LearningRecord, error)
	CountLearningRecords(ctx context.Context, find *FindLearningRecord) (int, error)

	// Preference model related methods.
	UpsertPreference(ctx context.Context, upsert *UpsertPreference) (*Preference, error)
	GetPreference(ctx context.Context, find *FindPreference) (*Preference, error)
}
