package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// attemptRepo implements AttemptRepo over the exam_attempts table.
type attemptRepo struct {
	drv *entsql.Driver
}

func (r *attemptRepo) SaveAttempt(ctx context.Context, data ExamAttemptData) error {
	if data.ID == uuid.Nil {
		data.ID = uuid.New()
	}
	if data.TakenAt.IsZero() {
		data.TakenAt = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAttempts).
		Columns("id", "taken_at", "bank", "total", "correct", "unanswered", "passed", "forced", "duration_secs").
		Values(
			data.ID.String(),
			data.TakenAt.UnixMilli(),
			data.Bank,
			data.Total,
			data.Correct,
			data.Unanswered,
			data.Passed,
			data.Forced,
			data.DurationSecs,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save exam attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) RecentAttempts(ctx context.Context, limit int) ([]ExamAttemptData, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "taken_at", "bank", "total", "correct", "unanswered", "passed", "forced", "duration_secs").
		From(entsql.Table(tableAttempts)).
		OrderBy(entsql.Desc("taken_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query exam attempts: %w", err)
	}
	defer rows.Close()

	var out []ExamAttemptData
	for rows.Next() {
		var (
			id      string
			takenAt int64
			a       ExamAttemptData
		)
		if err := rows.Scan(&id, &takenAt, &a.Bank, &a.Total, &a.Correct, &a.Unanswered, &a.Passed, &a.Forced, &a.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan exam attempt: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse attempt id %q: %w", id, err)
		}
		a.ID = parsed
		a.TakenAt = time.UnixMilli(takenAt)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exam attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) Stats(ctx context.Context) (AttemptStats, error) {
	total, err := r.count(ctx, nil)
	if err != nil {
		return AttemptStats{}, err
	}
	passed, err := r.count(ctx, entsql.EQ("passed", true))
	if err != nil {
		return AttemptStats{}, err
	}
	return AttemptStats{Attempts: total, Passed: passed}, nil
}

func (r *attemptRepo) count(ctx context.Context, pred *entsql.Predicate) (int, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(tableAttempts))
	if pred != nil {
		sel = sel.Where(pred)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("count exam attempts: %w", err)
	}
	defer rows.Close()

	n, err := entsql.ScanInt(rows)
	if err != nil {
		return 0, fmt.Errorf("scan attempt count: %w", err)
	}
	return n, nil
}
