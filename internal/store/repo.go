package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExamAttemptData captures one submitted mock exam.
type ExamAttemptData struct {
	ID           uuid.UUID
	TakenAt      time.Time
	Bank         string
	Total        int
	Correct      int
	Unanswered   int
	Passed       bool
	Forced       bool // submitted by the countdown reaching zero
	DurationSecs int64
}

// AttemptStats aggregates the exam history.
type AttemptStats struct {
	Attempts int
	Passed   int
}

// PassRate returns Passed over Attempts, 0 when there are none.
func (s AttemptStats) PassRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Attempts)
}

// AttemptRepo persists exam attempts.
type AttemptRepo interface {
	// SaveAttempt appends an attempt. Attempts are never updated.
	SaveAttempt(ctx context.Context, data ExamAttemptData) error

	// RecentAttempts returns up to limit attempts, newest first.
	// A limit of 0 returns all.
	RecentAttempts(ctx context.Context, limit int) ([]ExamAttemptData, error)

	// Stats returns aggregate counts across all attempts.
	Stats(ctx context.Context) (AttemptStats, error)
}
