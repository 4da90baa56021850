package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// KV is a string key/value entry. It holds the wrong-answer blob and the
// language preference.
type KV struct {
	ent.Schema
}

func (KV) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			Immutable().
			Comment("Storage key, e.g. liuk_wrong_ids_v1"),
		field.Text("value").
			Comment("Opaque value, usually JSON"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last write"),
	}
}

func (KV) Indexes() []ent.Index {
	return nil
}
