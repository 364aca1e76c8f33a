package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/wordtrail/wordtrail/store"
)

// wordInsertChunkSize bounds the number of rows per INSERT statement. The
// whole batch still commits in one transaction; chunking is only for
// statement size.
const wordInsertChunkSize = 100

var wordFieldList = strings.Join([]string{
	"id", "word", "meaning", "uk_phonetic", "us_phonetic", "example",
	"status", "last_review_date", "next_review_date", "review_count",
	"is_favorite", "error_count", "wordbook_id", "last_modified",
}, ", ")

func (d *DB) CreateWords(ctx context.Context, wordbookID int32, creates []*store.Word) (int, error) {
	if len(creates) == 0 {
		return 0, nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, chunk := range lo.Chunk(creates, wordInsertChunkSize) {
		valueClauses := make([]string, 0, len(chunk))
		args := make([]any, 0, len(chunk)*8)
		for _, create := range chunk {
			status := create.Status
			if status == "" {
				status = store.WordStatusNew
			}
			valueClauses = append(valueClauses, "("+placeholders(8)+")")
			args = append(args,
				create.Text, create.Meaning, create.UKPhonetic, create.USPhonetic,
				create.Example, status.String(), wordbookID, time.Now().Unix(),
			)
		}

		stmt := `INSERT INTO word (word, meaning, uk_phonetic, us_phonetic, example, status, wordbook_id, last_modified)
			VALUES ` + strings.Join(valueClauses, ", ")
		result, err := tx.ExecContext(ctx, stmt, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert words: %w", err)
		}
		rows, _ := result.RowsAffected()
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

func (d *DB) ListWords(ctx context.Context, find *store.FindWord) ([]*store.Word, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "word.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Text; v != nil {
		where, args = append(where, "word.word = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.WordbookID; v != nil {
		where, args = append(where, "word.wordbook_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "word.status = "+placeholder(len(args)+1)), append(args, v.String())
	}
	if v := find.IsFavorite; v != nil {
		where, args = append(where, "word.is_favorite = "+placeholder(len(args)+1)), append(args, boolToInt(*v))
	}
	if v := find.HasErrors; v != nil && *v {
		where = append(where, "word.error_count > 0")
	}
	if v := find.DueBefore; v != nil {
		where, args = append(where, "word.next_review_date <= "+placeholder(len(args)+1)), append(args, formatDate(*v))
	}

	orderBy := "ORDER BY word.id ASC"
	if find.Random {
		orderBy = "ORDER BY RANDOM()"
	}

	query := `SELECT ` + wordFieldList + ` FROM word WHERE ` + strings.Join(where, " AND ") + ` ` + orderBy
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

func (d *DB) ListPlannedReviewWords(ctx context.Context, find *store.FindPlannedReview) ([]*store.Word, error) {
	where := []string{"word.status = ?", "word.next_review_date <= ?"}
	args := []any{store.WordStatusNeedsReview.String(), formatDate(find.Today)}

	if v := find.WordbookID; v != nil {
		where, args = append(where, "word.wordbook_id = ?"), append(args, *v)
	}
	if len(find.ReviewCounts) > 0 {
		where = append(where, "word.review_count IN ("+placeholders(len(find.ReviewCounts))+")")
		for _, count := range find.ReviewCounts {
			args = append(args, count)
		}
	}

	query := `SELECT ` + wordFieldList + ` FROM word
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY word.next_review_date ASC`
	if find.Limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query planned review words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

func (d *DB) UpdateWordReview(ctx context.Context, update *store.UpdateWordReview) error {
	stmt := `UPDATE word
		SET status = ?, last_review_date = ?, next_review_date = ?, review_count = ?, last_modified = ?
		WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, stmt,
		update.Status.String(),
		nullableDate(update.LastReviewDate),
		nullableDate(update.NextReviewDate),
		update.ReviewCount,
		time.Now().Unix(),
		update.ID,
	); err != nil {
		return fmt.Errorf("failed to update word review: %w", err)
	}
	return nil
}

func (d *DB) SetWordFavorite(ctx context.Context, id int32, favorite bool) error {
	stmt := `UPDATE word SET is_favorite = ?, last_modified = ? WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, boolToInt(favorite), time.Now().Unix(), id); err != nil {
		return fmt.Errorf("failed to set word favorite: %w", err)
	}
	return nil
}

func (d *DB) SetWordErrorCount(ctx context.Context, id int32, count int) error {
	stmt := `UPDATE word SET error_count = ?, last_modified = ? WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, count, time.Now().Unix(), id); err != nil {
		return fmt.Errorf("failed to set word error count: %w", err)
	}
	return nil
}

func (d *DB) ResetWordStatus(ctx context.Context, wordbookID *int32) (int64, error) {
	where, args := []string{"status != ?"}, []any{store.WordStatusKnown.String()}
	if wordbookID != nil {
		where, args = append(where, "wordbook_id = ?"), append(args, *wordbookID)
	}

	stmt := `UPDATE word
		SET status = ?, last_review_date = NULL, next_review_date = NULL, review_count = 0, last_modified = ?
		WHERE ` + strings.Join(where, " AND ")
	args = append([]any{store.WordStatusNew.String(), time.Now().Unix()}, args...)

	result, err := d.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to reset word status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows, nil
}

func (d *DB) DeleteWords(ctx context.Context, delete *store.DeleteWord) error {
	where, args := []string{"1 = 1"}, []any{}
	if v := delete.WordbookID; v != nil {
		where, args = append(where, "wordbook_id = ?"), append(args, *v)
	}

	stmt := `DELETE FROM word WHERE ` + strings.Join(where, " AND ")
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to delete words: %w", err)
	}
	return nil
}

func (d *DB) CountWords(ctx context.Context, count *store.CountWord) (int, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := count.WordbookID; v != nil {
		where, args = append(where, "wordbook_id = ?"), append(args, *v)
	}
	if v := count.Status; v != nil {
		where, args = append(where, "status = ?"), append(args, v.String())
	}
	if v := count.DueBefore; v != nil {
		where, args = append(where, "next_review_date <= ?"), append(args, formatDate(*v))
	}
	if v := count.LastReviewDate; v != nil {
		where, args = append(where, "last_review_date = ?"), append(args, formatDate(*v))
	}

	query := `SELECT COUNT(*) FROM word WHERE ` + strings.Join(where, " AND ")
	var n int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return n, nil
}

func scanWords(rows *sql.Rows) ([]*store.Word, error) {
	list := make([]*store.Word, 0)
	for rows.Next() {
		var word store.Word
		var status string
		var lastReviewDate, nextReviewDate sql.NullString
		var isFavorite int

		if err := rows.Scan(
			&word.ID,
			&word.Text,
			&word.Meaning,
			&word.UKPhonetic,
			&word.USPhonetic,
			&word.Example,
			&status,
			&lastReviewDate,
			&nextReviewDate,
			&word.ReviewCount,
			&isFavorite,
			&word.ErrorCount,
			&word.WordbookID,
			&word.LastModifiedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}

		word.Status = store.WordStatus(status)
		word.IsFavorite = isFavorite != 0
		if lastReviewDate.Valid {
			t, err := parseDate(lastReviewDate.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse last review date: %w", err)
			}
			word.LastReviewDate = &t
		}
		if nextReviewDate.Valid {
			t, err := parseDate(nextReviewDate.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse next review date: %w", err)
			}
			word.NextReviewDate = &t
		}

		list = append(list, &word)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate words: %w", err)
	}
	return list, nil
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatDate(*t)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
