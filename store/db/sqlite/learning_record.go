package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/wordtrail/wordtrail/store"
)

func (d *DB) CreateLearningRecord(ctx context.Context, create *store.LearningRecord) (*store.LearningRecord, error) {
	stmt := `INSERT INTO learning_record (word_id, wordbook_id, learn_date, is_correct, review_time)
		VALUES (` + placeholders(5) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.WordID,
		create.WordbookID,
		formatDate(create.LearnDate),
		boolToInt(create.IsCorrect),
		create.ReviewTime,
	).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create learning record: %w", err)
	}

	return create, nil
}

func (d *DB) CountLearningRecords(ctx context.Context, find *store.FindLearningRecord) (int, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.WordID; v != nil {
		where, args = append(where, "word_id = ?"), append(args, *v)
	}
	if v := find.LearnDate; v != nil {
		where, args = append(where, "learn_date = ?"), append(args, formatDate(*v))
	}
	if find.StartedOnly {
		where = append(where, "review_time = 0 AND is_correct = 1")
	}

	query := `SELECT COUNT(*) FROM learning_record WHERE ` + strings.Join(where, " AND ")
	var n int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count learning records: %w", err)
	}
	return n, nil
}
