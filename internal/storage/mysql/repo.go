package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"review_analyzer/internal/domain"
)

// Repo is the MySQL seed table: written by the importer, read once by the
// server at start-up.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createReviewsSQL)
	return err
}

// UpsertReviews writes one multi-row INSERT; rs[i] is stored at position
// offset+i. Rows must already be validated.
func (r *Repo) UpsertReviews(ctx context.Context, offset int, rs []domain.ReviewRecord) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*5)
	for i, rec := range rs {
		ts, err := domain.ParseTimestamp(rec.Timestamp)
		if err != nil {
			return fmt.Errorf("review %s: %w", rec.ReviewID, err)
		}
		values = append(values, "(?,?,?,?,?)")
		args = append(args, offset+i, rec.ReviewID, rec.ReviewBody, rec.Location, ts)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// LoadReviews implements domain.ReviewSource. The DSN must set parseTime=true
// and loc=UTC.
func (r *Repo) LoadReviews(ctx context.Context) ([]domain.ReviewRecord, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewRecord
	for rows.Next() {
		var rec domain.ReviewRecord
		var createdAt time.Time
		if err := rows.Scan(&rec.ReviewID, &rec.ReviewBody, &rec.Location, &createdAt); err != nil {
			return nil, err
		}
		rec.Timestamp = domain.FormatTimestamp(createdAt.UTC())
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countReviewsSQL).Scan(&n)
	return n, err
}
