package labels

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/labelstore/internal/record"
	"github.com/roach88/labelstore/internal/session"
	"github.com/roach88/labelstore/internal/testutil"
)

func newTestStore(t *testing.T) (*Store, *testutil.Adapter, *session.Session) {
	t.Helper()
	host := &session.StaticHost{ID: "doc1", Title: "Report", URL: "https://notes.example/d/doc1"}
	sess, err := session.New(host, session.NewFixedGenerator("session-1"))
	require.NoError(t, err)
	adapter := testutil.NewAdapter()
	return New(adapter, sess, nil), adapter, sess
}

func TestLoadUnseenDocument(t *testing.T) {
	s, _, sess := newTestStore(t)

	rec := s.Load(context.Background())

	assert.Equal(t, record.Empty(), rec)
	assert.Equal(t, []string{}, sess.LastKnown())
}

func TestLoadSetsLastKnown(t *testing.T) {
	s, adapter, sess := newTestStore(t)
	adapter.Seed(record.Key("doc1"), `{"labels":["a","b"],"title":"Report","url":"u"}`)

	rec := s.Load(context.Background())

	assert.Equal(t, []string{"a", "b"}, rec.Labels)
	assert.Equal(t, []string{"a", "b"}, sess.LastKnown())
}

func TestLoadLegacyRecord(t *testing.T) {
	s, adapter, _ := newTestStore(t)
	adapter.Seed(record.Key("doc1"), `["x","y"]`)

	rec := s.Load(context.Background())

	assert.Equal(t, []string{"x", "y"}, rec.Labels)
	assert.Equal(t, record.DefaultTitle, rec.Title)
}

func TestLoadMalformedRecordDegrades(t *testing.T) {
	s, adapter, sess := newTestStore(t)
	adapter.Seed(record.Key("doc1"), `{"labels":[`)

	rec := s.Load(context.Background())

	assert.Equal(t, record.Empty(), rec)
	assert.Equal(t, []string{}, sess.LastKnown())
}

func TestLoadReadFailureDegrades(t *testing.T) {
	s, adapter, _ := newTestStore(t)
	adapter.GetErr = errors.New("database locked")

	rec := s.Load(context.Background())

	assert.Equal(t, record.Empty(), rec)
	assert.Equal(t, 0, adapter.SetCalls, "read paths never write")
}

func TestPersistRederivesMetadataFromHost(t *testing.T) {
	s, adapter, _ := newTestStore(t)

	rec := record.Record{Labels: []string{"a"}, Title: "stale", URL: "stale"}
	got := s.Persist(context.Background(), rec)

	assert.Equal(t, "Report", got.Title)
	assert.Equal(t, "https://notes.example/d/doc1", got.URL)

	stored, ok := adapter.Value(record.Key("doc1"))
	require.True(t, ok)
	decoded, err := record.Decode(stored, true)
	require.NoError(t, err)
	assert.Equal(t, got, decoded)
}

func TestPersistWriteFailureKeepsInMemoryState(t *testing.T) {
	s, adapter, sess := newTestStore(t)
	adapter.SetErr = errors.New("quota exceeded")

	got := s.Persist(context.Background(), record.Record{Labels: []string{"a"}})

	assert.Equal(t, []string{"a"}, got.Labels, "in-memory record stays authoritative")
	assert.Equal(t, []string{"a"}, sess.LastKnown(), "snapshot advances even on write failure")
	_, ok := adapter.Value(record.Key("doc1"))
	assert.False(t, ok, "failed write leaves no value")
}

func TestAddTrimsAndAppends(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	rec := s.Load(ctx)
	rec = s.Add(ctx, rec, "  urgent  ")
	rec = s.Add(ctx, rec, "urgent")

	assert.Equal(t, []string{"urgent", "urgent"}, rec.Labels, "duplicates allowed")
}

func TestAddWhitespaceOnlyIsNoOp(t *testing.T) {
	s, adapter, _ := newTestStore(t)
	ctx := context.Background()

	rec := s.Load(ctx)
	got := s.Add(ctx, rec, "   \t\n ")

	assert.Equal(t, rec, got)
	assert.Equal(t, 0, adapter.SetCalls, "no-op must not persist")
}

func TestOrderPreservation(t *testing.T) {
	// Insertion order minus removed entries, for any add/remove sequence.
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	rec := s.Load(ctx)
	for _, l := range []string{"a", "b", "c", "d"} {
		rec = s.Add(ctx, rec, l)
	}

	var err error
	rec, err = s.Remove(ctx, rec, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, rec.Labels)

	rec, err = s.Remove(ctx, rec, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, rec.Labels)
}

func TestRemoveOutOfRange(t *testing.T) {
	s, adapter, _ := newTestStore(t)
	ctx := context.Background()

	rec := record.Record{Labels: []string{"a", "b"}}
	for _, index := range []int{-1, 2, 100} {
		got, err := s.Remove(ctx, rec, index)
		require.Error(t, err)
		assert.True(t, IsRangeError(err))
		assert.Equal(t, rec, got, "record unchanged on precondition violation")
	}
	assert.Equal(t, 0, adapter.SetCalls)
}

func TestReorderSplicePairSemantics(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	// Moving past multiple positions: remove first, then insert against the
	// shortened sequence.
	rec := record.Record{Labels: []string{"a", "b", "c", "d"}}
	got, err := s.Reorder(ctx, rec, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a", "d"}, got.Labels)

	rec = record.Record{Labels: []string{"a", "b", "c", "d"}}
	got, err = s.Reorder(ctx, rec, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d", "a"}, got.Labels)

	rec = record.Record{Labels: []string{"a", "b", "c", "d"}}
	got, err = s.Reorder(ctx, rec, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a", "b", "c"}, got.Labels)
}

func TestReorderThenReverseRestores(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	original := []string{"a", "b", "c", "d", "e"}
	for from := 0; from < len(original); from++ {
		for to := 0; to < len(original); to++ {
			if from == to {
				continue
			}
			rec := record.Record{Labels: append([]string{}, original...)}
			moved, err := s.Reorder(ctx, rec, from, to)
			require.NoError(t, err)
			restored, err := s.Reorder(ctx, moved, to, from)
			require.NoError(t, err)
			assert.Equal(t, original, restored.Labels, "reorder(%d,%d) then reorder(%d,%d)", from, to, to, from)
		}
	}
}

func TestReorderSameIndexIsNoOp(t *testing.T) {
	s, adapter, _ := newTestStore(t)

	rec := record.Record{Labels: []string{"a", "b"}}
	got, err := s.Reorder(context.Background(), rec, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, rec, got)
	assert.Equal(t, 0, adapter.SetCalls, "no-op must not persist")
}

func TestReorderOutOfRange(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	rec := record.Record{Labels: []string{"a", "b"}}
	for _, pair := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		_, err := s.Reorder(ctx, rec, pair[0], pair[1])
		require.Error(t, err, "reorder(%d,%d)", pair[0], pair[1])
		assert.True(t, IsRangeError(err))
	}
}

func TestOperationsDoNotAliasCallerSlice(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	rec := record.Record{Labels: []string{"a", "b", "c"}}
	_, err := s.Remove(ctx, rec, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, rec.Labels, "input record untouched")

	_, err = s.Reorder(ctx, rec, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, rec.Labels)
}
