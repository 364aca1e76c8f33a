package store

import (
	"context"
	"time"
)

// Wordbook is the object representing a collection of words.
type Wordbook struct {
	ID           int32
	UID          string
	Name         string
	Description  string
	SourcePath   string
	Type         string
	TotalCount   int
	NewCount     int
	ReviewCount  int
	LearnedCount int
	IsFavorite   bool
	IsActive     bool
	CreatedTs    int64
	UpdatedTs    int64
}

// FindWordbook is the find condition for wordbooks.
type FindWordbook struct {
	ID         *int32
	UID        *string
	IsActive   *bool
	IsFavorite *bool
}

// UpdateWordbook is the update request for a wordbook.
type UpdateWordbook struct {
	ID          int32
	Name        *string
	Description *string
	IsFavorite  *bool
}

// DeleteWordbook deletes a wordbook and cascades to its words.
type DeleteWordbook struct {
	ID int32
}

// CreateWordbook creates a new wordbook.
func (s *Store) CreateWordbook(ctx context.Context, create *Wordbook) (*Wordbook, error) {
	return s.driver.CreateWordbook(ctx, create)
}

// ListWordbooks lists wordbooks with filter.
func (s *Store) ListWordbooks(ctx context.Context, find *FindWordbook) ([]*Wordbook, error) {
	return s.driver.ListWordbooks(ctx, find)
}

// GetWordbook gets a wordbook by find condition. Returns nil when not found.
func (s *Store) GetWordbook(ctx context.Context, find *FindWordbook) (*Wordbook, error) {
	list, err := s.driver.ListWordbooks(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// GetActiveWordbook returns the currently active wordbook, or nil when none
// has been selected yet.
func (s *Store) GetActiveWordbook(ctx context.Context) (*Wordbook, error) {
	active := true
	return s.GetWordbook(ctx, &FindWordbook{IsActive: &active})
}

// UpdateWordbook updates a wordbook.
func (s *Store) UpdateWordbook(ctx context.Context, update *UpdateWordbook) error {
	return s.driver.UpdateWordbook(ctx, update)
}

// SetActiveWordbook clears the active flag on all wordbooks and sets it on
// the target within one transaction, so readers never observe zero or
// multiple active wordbooks.
func (s *Store) SetActiveWordbook(ctx context.Context, id int32) error {
	return s.driver.SetActiveWordbook(ctx, id)
}

// RecomputeWordbookStats recalculates the cached total/new/due/learned counts
// of a wordbook within a single transaction so the counts are mutually
// consistent at a point in time.
func (s *Store) RecomputeWordbookStats(ctx context.Context, id int32, today time.Time) (*Wordbook, error) {
	return s.driver.RecomputeWordbookStats(ctx, id, today)
}

// DeleteWordbook deletes a wordbook and all words it owns.
func (s *Store) DeleteWordbook(ctx context.Context, delete *DeleteWordbook) error {
	if err := s.driver.DeleteWordbook(ctx, delete); err != nil {
		return err
	}
	s.invalidateWordCache(ctx)
	return nil
}
