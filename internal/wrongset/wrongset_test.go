package wrongset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyKV fails every call while broken is set and counts writes.
type flakyKV struct {
	*MemoryKV
	broken bool
	sets   int
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.broken {
		return "", false, errors.New("storage unavailable")
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	f.sets++
	if f.broken {
		return errors.New("quota exceeded")
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func TestRecord_FreshStore(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, NewMemoryKV(), nil)
	require.Equal(t, 0, s.Len())

	s.Record(ctx, 42)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []int{42}, s.IDs())
	assert.True(t, s.Contains(42))
}

func TestRecord_Idempotent(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: NewMemoryKV()}
	s := Open(ctx, kv, nil)

	s.Record(ctx, 5)
	s.Record(ctx, 5)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, kv.sets, "second record must not write")
}

func TestRecord_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := Open(ctx, kv, nil)
	s.Record(ctx, 3)
	s.Record(ctx, 1)

	raw, ok, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[1,3]", raw)

	reopened := Open(ctx, kv, nil)
	assert.Equal(t, []int{1, 3}, reopened.IDs())
}

func TestOpen_MalformedBlob(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "{{{"},
		{"object", `{"ids":[1,2]}`},
		{"strings", `["1","2"]`},
		{"fractions", `[1.5]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(ctx, Key, tt.blob))
			s := Open(ctx, kv, nil)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestPersistenceFailureDegradesToMemory(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: NewMemoryKV(), broken: true}
	s := Open(ctx, kv, nil)

	s.Record(ctx, 9)
	assert.True(t, s.Contains(9))
	assert.Equal(t, 1, s.Len())

	kv.broken = false
	_, ok, _ := kv.Get(ctx, Key)
	assert.False(t, ok, "failed write leaves nothing persisted")

	s.Record(ctx, 10)
	raw, ok, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[9,10]", raw, "next successful write carries the full in-memory set")
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := Open(ctx, kv, nil)
	s.Record(ctx, 1)
	s.Record(ctx, 2)

	s.Clear(ctx)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, Open(ctx, kv, nil).Len())
}

func TestSet_IsCopy(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, NewMemoryKV(), nil)
	s.Record(ctx, 1)
	m := s.Set()
	m[2] = true
	assert.False(t, s.Contains(2))
}
