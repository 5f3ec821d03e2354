package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HistoryStore = (*HistoryRepo)(nil)

// HistoryRepo is the SQLite implementation of the HistoryStore port interface.
type HistoryRepo struct {
	db *DB
}

// NewHistoryRepo creates a new HistoryRepo backed by the given DB.
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Record appends one dispatched post.
func (r *HistoryRepo) Record(ctx context.Context, rec model.PostRecord) error {
	const query = `INSERT INTO posts (platform, post_id, post_url, text, created_at) VALUES (?, ?, ?, ?, ?)`

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		string(rec.Platform), rec.PostID, rec.PostURL, rec.Text, createdAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record post for %s: %w", rec.Platform, err)
	}
	return nil
}

// List returns dispatched posts newest-first, at most limit entries
// (unlimited when limit <= 0).
func (r *HistoryRepo) List(ctx context.Context, limit int) ([]model.PostRecord, error) {
	query := `SELECT id, platform, post_id, post_url, text, created_at FROM posts ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	records := []model.PostRecord{}
	for rows.Next() {
		var rec model.PostRecord
		var platform, createdAt string
		if err := rows.Scan(&rec.ID, &platform, &rec.PostID, &rec.PostURL, &rec.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		rec.Platform = model.Platform(platform)

		rec.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for post %d: %w", rec.ID, err)
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return records, nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
