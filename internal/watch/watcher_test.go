package watch

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

func newTestWatcher(t *testing.T) (*Watcher, *testutil.Adapter, *session.Session) {
	t.Helper()
	host := &session.StaticHost{ID: "doc1", Title: "Report", URL: "https://notes.example/d/doc1"}
	sess, err := session.New(host, session.NewFixedGenerator("session-1"))
	require.NoError(t, err)
	adapter := testutil.NewAdapter()
	return New(adapter, sess, nil), adapter, sess
}

func seedLabels(t *testing.T, adapter *testutil.Adapter, labels []string) {
	t.Helper()
	encoded, err := record.Encode(record.Record{Labels: labels, Title: "Report"})
	require.NoError(t, err)
	adapter.Seed(record.Key("doc1"), encoded)
}

func TestRecheckNoDivergenceNoCallback(t *testing.T) {
	w, adapter, sess := newTestWatcher(t)
	sess.SetLastKnown([]string{"a", "b"})
	seedLabels(t, adapter, []string{"a", "b"})

	fired := 0
	w.OnExternalChange(func([]string) { fired++ })

	changed, err := w.Recheck(context.Background())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, fired)
}

func TestRecheckDivergenceFiresOnce(t *testing.T) {
	w, adapter, sess := newTestWatcher(t)
	sess.SetLastKnown([]string{"a", "b"})
	seedLabels(t, adapter, []string{"a", "b", "c"})

	var got [][]string
	w.OnExternalChange(func(labels []string) { got = append(got, labels) })

	changed, err := w.Recheck(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, got, 1, "callback fires exactly once")
	assert.Equal(t, []string{"a", "b", "c"}, got[0])
	assert.Equal(t, []string{"a", "b", "c"}, sess.LastKnown(), "snapshot replaced")

	// The divergence was absorbed; a second check is quiet.
	changed, err = w.Recheck(context.Background())
	require.NoError(t, err)
	assert.False(t, changed)
	require.Len(t, got, 1)
}

func TestRecheckIsLevelTriggered(t *testing.T) {
	w, adapter, sess := newTestWatcher(t)
	sess.SetLastKnown([]string{"a"})

	// Two external writes between checks collapse into one transition.
	seedLabels(t, adapter, []string{"a", "b"})
	seedLabels(t, adapter, []string{"a", "b", "c"})

	fired := 0
	w.OnExternalChange(func([]string) { fired++ })

	changed, err := w.Recheck(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, fired)
}

func TestRecheckOrderSensitive(t *testing.T) {
	w, adapter, sess := newTestWatcher(t)
	sess.SetLastKnown([]string{"a", "b"})
	seedLabels(t, adapter, []string{"b", "a"})

	changed, err := w.Recheck(context.Background())
	require.NoError(t, err)
	assert.True(t, changed, "same elements in a different order diverge")
}

func TestRecheckExternalDeletionDiverges(t *testing.T) {
	w, _, sess := newTestWatcher(t)
	sess.SetLastKnown([]string{"a"})
	// Key absent: decodes as the empty record.

	changed, err := w.Recheck(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{}, sess.LastKnown())
}

func TestRecheckHandlersInRegistrationOrder(t *testing.T) {
	w, adapter, sess := newTestWatcher(t)
	sess.SetLastKnown([]string{})
	seedLabels(t, adapter, []string{"a"})

	var order []string
	w.OnExternalChange(func([]string) { order = append(order, "first") })
	w.OnExternalChange(func([]string) { order = append(order, "second") })

	_, err := w.Recheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRecheckReadFailure(t *testing.T) {
	w, adapter, sess := newTestWatcher(t)
	sess.SetLastKnown([]string{"a"})
	adapter.GetErr = errors.New("database locked")

	fired := 0
	w.OnExternalChange(func([]string) { fired++ })

	changed, err := w.Recheck(context.Background())
	assert.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, fired)
	assert.Equal(t, []string{"a"}, sess.LastKnown(), "snapshot untouched on failure")
	assert.Equal(t, StateSynced, w.State(), "state settles back to synced")
}

func TestHandlerCannotCorruptSnapshot(t *testing.T) {
	w, adapter, sess := newTestWatcher(t)
	sess.SetLastKnown([]string{})
	seedLabels(t, adapter, []string{"a", "b"})

	w.OnExternalChange(func(labels []string) { labels[0] = "mutated" })

	_, err := w.Recheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sess.LastKnown())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "synced", StateSynced.String())
	assert.Equal(t, "checking", StateChecking.String())
}
