package wordbook

import (
	"context"
	"log/slog"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/wordtrail/wordtrail/store"
)

// Service manages wordbooks: creation, bulk import, cached count upkeep and
// the single-active-wordbook invariant.
type Service struct {
	store *store.Store

	now func() time.Time
}

// NewService creates a wordbook service.
func NewService(s *store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Create creates an empty wordbook.
func (s *Service) Create(ctx context.Context, name, description, sourcePath, bookType string) (*store.Wordbook, error) {
	return s.store.CreateWordbook(ctx, &store.Wordbook{
		UID:         shortuuid.New(),
		Name:        name,
		Description: description,
		SourcePath:  sourcePath,
		Type:        bookType,
	})
}

// Import bulk-inserts words into a wordbook in one transaction and then
// recomputes the cached counts. Returns the number of words inserted.
func (s *Service) Import(ctx context.Context, wordbookID int32, words []*store.Word) (int, error) {
	inserted, err := s.store.CreateWords(ctx, wordbookID, words)
	if err != nil {
		return 0, errors.Wrap(err, "failed to import words")
	}
	if _, err := s.store.RecomputeWordbookStats(ctx, wordbookID, s.today()); err != nil {
		return inserted, errors.Wrap(err, "failed to recompute wordbook stats")
	}
	return inserted, nil
}

// SetActive selects a wordbook for learning, clearing the flag on all others
// atomically.
func (s *Service) SetActive(ctx context.Context, wordbookID int32) error {
	return s.store.SetActiveWordbook(ctx, wordbookID)
}

// Active returns the currently selected wordbook, or nil.
func (s *Service) Active(ctx context.Context) *store.Wordbook {
	wordbook, err := s.store.GetActiveWordbook(ctx)
	if err != nil {
		slog.Error("failed to get active wordbook", slog.String("error", err.Error()))
		return nil
	}
	return wordbook
}

// Stats recomputes and returns the cached counts of a wordbook. Storage
// failures degrade to nil.
func (s *Service) Stats(ctx context.Context, wordbookID int32) *store.Wordbook {
	wordbook, err := s.store.RecomputeWordbookStats(ctx, wordbookID, s.today())
	if err != nil {
		slog.Error("failed to recompute wordbook stats",
			slog.Int("wordbook", int(wordbookID)), slog.String("error", err.Error()))
		return nil
	}
	return wordbook
}

// List returns all wordbooks.
func (s *Service) List(ctx context.Context) []*store.Wordbook {
	list, err := s.store.ListWordbooks(ctx, &store.FindWordbook{})
	if err != nil {
		slog.Error("failed to list wordbooks", slog.String("error", err.Error()))
		return nil
	}
	return list
}

// SetFavorite toggles the favorite flag of a wordbook.
func (s *Service) SetFavorite(ctx context.Context, wordbookID int32, favorite bool) error {
	return s.store.UpdateWordbook(ctx, &store.UpdateWordbook{
		ID:         wordbookID,
		IsFavorite: &favorite,
	})
}

// Delete removes a wordbook and all words it owns.
func (s *Service) Delete(ctx context.Context, wordbookID int32) error {
	return s.store.DeleteWordbook(ctx, &store.DeleteWordbook{ID: wordbookID})
}
