package wrongset

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Key is the persisted key of the wrong-answer id set.
const Key = "liuk_wrong_ids_v1"

const blobSchemaURL = "schema://wrong-ids.json"

var blobSchema = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "integer"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(blobSchemaURL, blobSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(blobSchemaURL)
	})
	return compiled, compileErr
}

// Store is the persisted set of question ids the learner has missed. The
// in-memory set is authoritative for the process; persistence failures are
// logged and never returned.
type Store struct {
	kv     KV
	logger *slog.Logger

	mu  sync.Mutex
	ids map[int]struct{}
}

// Open loads the set from kv. A missing, unreadable or malformed blob yields
// an empty set.
func Open(ctx context.Context, kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{kv: kv, logger: logger, ids: make(map[int]struct{})}

	raw, ok, err := kv.Get(ctx, Key)
	if err != nil {
		logger.Warn("wrong set load failed, starting empty", "error", err)
		return s
	}
	if !ok || raw == "" {
		return s
	}
	ids, err := decode(raw)
	if err != nil {
		logger.Warn("wrong set blob ignored", "error", err)
		return s
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func decode(raw string) ([]int, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Record adds id. Adding an id already present is a no-op and does not touch
// the backing store.
func (s *Store) Record(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.persistLocked(ctx)
}

// Contains reports whether id has been missed before.
func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids in the set.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the ids in ascending order.
func (s *Store) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// Set returns a copy of the ids as a lookup set.
func (s *Store) Set() map[int]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]bool, len(s.ids))
	for id := range s.ids {
		out[id] = true
	}
	return out
}

// Clear empties the set. Only called on an explicit reset.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[int]struct{})
	s.persistLocked(ctx)
}

func (s *Store) sortedLocked() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s *Store) persistLocked(ctx context.Context) {
	b, err := json.Marshal(s.sortedLocked())
	if err != nil {
		s.logger.Warn("wrong set encode failed", "error", err)
		return
	}
	if err := s.kv.Set(ctx, Key, string(b)); err != nil {
		s.logger.Warn("wrong set persist failed, keeping in memory", "error", err, "size", len(s.ids))
	}
}
