package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"github.com/google/uuid"
)

// ExamAttempt records one submitted mock exam. Rows are append-only.
type ExamAttempt struct {
	ent.Schema
}

func (ExamAttempt) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable(),
		field.Int64("taken_at").
			Immutable().
			Comment("Unix milliseconds of submission"),
		field.String("bank").
			Comment("Topic prefix the exam was drawn from, or all"),
		field.Int("total"),
		field.Int("correct"),
		field.Int("unanswered"),
		field.Bool("passed"),
		field.Bool("forced").
			Comment("Submitted by the countdown reaching zero"),
		field.Int64("duration_secs").
			Comment("Time spent, capped at the exam duration"),
	}
}

func (ExamAttempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("taken_at"),
	}
}
