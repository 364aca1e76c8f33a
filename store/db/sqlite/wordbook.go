package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/wordtrail/wordtrail/store"
)

func (d *DB) CreateWordbook(ctx context.Context, create *store.Wordbook) (*store.Wordbook, error) {
	fields := []string{"uid", "name", "description", "source_path", "type"}
	placeholderValues := []any{create.UID, create.Name, create.Description, create.SourcePath, create.Type}

	stmt := `INSERT INTO wordbook (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create wordbook: %w", err)
	}

	return create, nil
}

func (d *DB) ListWordbooks(ctx context.Context, find *store.FindWordbook) ([]*store.Wordbook, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "wordbook.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "wordbook.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.IsActive; v != nil {
		where, args = append(where, "wordbook.is_active = "+placeholder(len(args)+1)), append(args, boolToInt(*v))
	}
	if v := find.IsFavorite; v != nil {
		where, args = append(where, "wordbook.is_favorite = "+placeholder(len(args)+1)), append(args, boolToInt(*v))
	}

	query := `
		SELECT
			id, uid, name, description, source_path, type,
			total_count, new_count, review_count, learned_count,
			is_favorite, is_active, created_ts, updated_ts
		FROM wordbook
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY wordbook.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wordbooks: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Wordbook, 0)
	for rows.Next() {
		var wordbook store.Wordbook
		var isFavorite, isActive int
		if err := rows.Scan(
			&wordbook.ID,
			&wordbook.UID,
			&wordbook.Name,
			&wordbook.Description,
			&wordbook.SourcePath,
			&wordbook.Type,
			&wordbook.TotalCount,
			&wordbook.NewCount,
			&wordbook.ReviewCount,
			&wordbook.LearnedCount,
			&isFavorite,
			&isActive,
			&wordbook.CreatedTs,
			&wordbook.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wordbook: %w", err)
		}
		wordbook.IsFavorite = isFavorite != 0
		wordbook.IsActive = isActive != 0
		list = append(list, &wordbook)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wordbooks: %w", err)
	}
	return list, nil
}

func (d *DB) UpdateWordbook(ctx context.Context, update *store.UpdateWordbook) error {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.IsFavorite; v != nil {
		set, args = append(set, "is_favorite = "+placeholder(len(args)+1)), append(args, boolToInt(*v))
	}

	if len(set) == 0 {
		return nil
	}
	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, time.Now().Unix())
	args = append(args, update.ID)

	stmt := `UPDATE wordbook SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update wordbook: %w", err)
	}
	return nil
}

// SetActiveWordbook clears every active flag and sets the target's inside one
// transaction. When the target does not exist the transaction rolls back, so
// the previously active wordbook stays active.
func (d *DB) SetActiveWordbook(ctx context.Context, id int32) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE wordbook SET is_active = 0 WHERE is_active = 1`); err != nil {
		return fmt.Errorf("failed to clear active flags: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE wordbook SET is_active = 1, updated_ts = ? WHERE id = ?`,
		time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set active wordbook: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("wordbook not found: %d", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RecomputeWordbookStats recalculates the cached counts from the word table
// inside a single transaction so they are consistent with each other.
func (d *DB) RecomputeWordbookStats(ctx context.Context, id int32, today time.Time) (*store.Wordbook, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	countIn := func(where string, args ...any) (int, error) {
		var n int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM word WHERE wordbook_id = ? AND `+where,
			append([]any{id}, args...)...).Scan(&n)
		return n, err
	}

	total, err := countIn("1 = 1")
	if err != nil {
		return nil, fmt.Errorf("failed to count words: %w", err)
	}
	newCount, err := countIn("status = ?", store.WordStatusNew.String())
	if err != nil {
		return nil, fmt.Errorf("failed to count new words: %w", err)
	}
	reviewCount, err := countIn("status = ? AND next_review_date <= ?",
		store.WordStatusNeedsReview.String(), formatDate(today))
	if err != nil {
		return nil, fmt.Errorf("failed to count due words: %w", err)
	}
	learnedCount, err := countIn("status = ?", store.WordStatusKnown.String())
	if err != nil {
		return nil, fmt.Errorf("failed to count learned words: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE wordbook
		SET total_count = ?, new_count = ?, review_count = ?, learned_count = ?, updated_ts = ?
		WHERE id = ?`,
		total, newCount, reviewCount, learnedCount, time.Now().Unix(), id,
	); err != nil {
		return nil, fmt.Errorf("failed to update wordbook stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	list, err := d.ListWordbooks(ctx, &store.FindWordbook{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, sql.ErrNoRows
	}
	return list[0], nil
}

// DeleteWordbook deletes a wordbook and cascades to its words.
func (d *DB) DeleteWordbook(ctx context.Context, delete *store.DeleteWordbook) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM word WHERE wordbook_id = ?`, delete.ID); err != nil {
		return fmt.Errorf("failed to delete wordbook words: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM wordbook WHERE id = ?`, delete.ID); err != nil {
		return fmt.Errorf("failed to delete wordbook: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
