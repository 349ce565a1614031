package share

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/labelstore/internal/index"
	"github.com/roach88/labelstore/internal/record"
	"github.com/roach88/labelstore/internal/session"
	"github.com/roach88/labelstore/internal/testutil"
)

func docURL(id string) string {
	return "https://notes.example/d/" + id
}

func newTestHost() session.Host {
	return &session.StaticHost{
		IDs: map[string]string{
			docURL("docA"): "docA",
			docURL("docB"): "docB",
			docURL("docC"): "docC",
		},
	}
}

func seedRecord(t *testing.T, adapter *testutil.Adapter, docID, title string, labels []string) {
	t.Helper()
	encoded, err := record.Encode(record.Record{Labels: labels, Title: title, URL: docURL(docID)})
	require.NoError(t, err)
	adapter.Seed(record.Key(docID), encoded)
}

func loadRecord(t *testing.T, adapter *testutil.Adapter, docID string) record.Record {
	t.Helper()
	raw, ok := adapter.Value(record.Key(docID))
	rec, err := record.Decode(raw, ok)
	require.NoError(t, err)
	return rec
}

func TestExportSnapshotsScanOrder(t *testing.T) {
	adapter := testutil.NewAdapter()
	seedRecord(t, adapter, "docA", "Report", []string{"Q1"})
	seedRecord(t, adapter, "docB", "Notes", []string{"Q1"})
	seedRecord(t, adapter, "docC", "Other", []string{"Q2"})

	payload, err := Export(context.Background(), index.New(adapter, nil), "Q1", "docA")
	require.NoError(t, err)

	assert.Equal(t, "Q1", payload.Label)
	// The test adapter enumerates sorted; the real substrate makes no
	// ordering promise, and neither does Export.
	assert.Equal(t, []DocumentEntry{
		{Title: "Report", URL: docURL("docA")},
		{Title: "Notes", URL: docURL("docB")},
	}, payload.Documents)
}

func TestExportEmptyLabel(t *testing.T) {
	payload, err := Export(context.Background(), index.New(testutil.NewAdapter(), nil), "Q1", "")
	require.NoError(t, err)
	assert.Equal(t, "Q1", payload.Label)
	assert.Empty(t, payload.Documents)
	assert.NotNil(t, payload.Documents)
}

func TestImportMergesAdditively(t *testing.T) {
	adapter := testutil.NewAdapter()
	seedRecord(t, adapter, "docA", "Report", []string{"Q1", "draft"})
	seedRecord(t, adapter, "docB", "Notes", []string{"draft"})

	codec := NewCodec(adapter, newTestHost(), nil)
	raw := fmt.Sprintf(`{"label":"Q1","documents":[{"title":"Report","url":%q},{"title":"Notes","url":%q}]}`,
		docURL("docA"), docURL("docB"))

	result := codec.Import(context.Background(), []byte(raw))

	require.True(t, result.Success)
	assert.Equal(t, 1, result.ImportedCount, "docA already carries Q1")
	assert.Equal(t, `Imported label "Q1" to 1 document(s).`, result.Message)

	assert.Equal(t, []string{"draft", "Q1"}, loadRecord(t, adapter, "docB").Labels,
		"appended, existing labels untouched")
	assert.Equal(t, []string{"Q1", "draft"}, loadRecord(t, adapter, "docA").Labels,
		"already-present label not duplicated or moved")
}

func TestImportIsIdempotent(t *testing.T) {
	adapter := testutil.NewAdapter()
	codec := NewCodec(adapter, newTestHost(), nil)
	raw := fmt.Sprintf(`{"label":"Q1","documents":[{"title":"A","url":%q},{"title":"B","url":%q}]}`,
		docURL("docA"), docURL("docB"))
	ctx := context.Background()

	first := codec.Import(ctx, []byte(raw))
	require.True(t, first.Success)
	assert.Equal(t, 2, first.ImportedCount)

	second := codec.Import(ctx, []byte(raw))
	require.True(t, second.Success)
	assert.Equal(t, 0, second.ImportedCount)
}

func TestImportCreatesRecordsLazily(t *testing.T) {
	adapter := testutil.NewAdapter()
	codec := NewCodec(adapter, newTestHost(), nil)
	raw := fmt.Sprintf(`{"label":"Q1","documents":[{"title":"Fresh","url":%q}]}`, docURL("docA"))

	result := codec.Import(context.Background(), []byte(raw))
	require.True(t, result.Success)
	require.Equal(t, 1, result.ImportedCount)

	rec := loadRecord(t, adapter, "docA")
	assert.Equal(t, []string{"Q1"}, rec.Labels)
	assert.Equal(t, "Fresh", rec.Title)
	assert.Equal(t, docURL("docA"), rec.URL)
}

func TestImportSkipsEntriesWithoutURL(t *testing.T) {
	adapter := testutil.NewAdapter()
	codec := NewCodec(adapter, newTestHost(), nil)
	raw := fmt.Sprintf(`{"label":"Q1","documents":[{"title":"NoURL"},{"title":"B","url":%q}]}`, docURL("docB"))

	result := codec.Import(context.Background(), []byte(raw))
	require.True(t, result.Success)
	assert.Equal(t, 1, result.ImportedCount)
}

func TestImportSkipsForeignNamespace(t *testing.T) {
	adapter := testutil.NewAdapter()
	codec := NewCodec(adapter, newTestHost(), nil)
	raw := `{"label":"Q1","documents":[{"title":"Elsewhere","url":"https://other.example/x/1"}]}`

	result := codec.Import(context.Background(), []byte(raw))
	require.True(t, result.Success)
	assert.Equal(t, 0, result.ImportedCount)
}

func TestImportSkipsStorageFailuresPerEntry(t *testing.T) {
	adapter := testutil.NewAdapter()
	adapter.SetErr = errors.New("quota exceeded")
	codec := NewCodec(adapter, newTestHost(), nil)
	raw := fmt.Sprintf(`{"label":"Q1","documents":[{"title":"A","url":%q}]}`, docURL("docA"))

	result := codec.Import(context.Background(), []byte(raw))
	require.True(t, result.Success, "per-entry failures do not fail the import")
	assert.Equal(t, 0, result.ImportedCount, "dropped writes are not counted")
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	codec := NewCodec(testutil.NewAdapter(), newTestHost(), nil)

	result := codec.Import(context.Background(), []byte(`{"label":"Q1","documents":[`))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, ErrCodeInvalidFormat)
}

func TestImportRejectsMissingLabel(t *testing.T) {
	adapter := testutil.NewAdapter()
	codec := NewCodec(adapter, newTestHost(), nil)

	result := codec.Import(context.Background(), []byte(`{"documents":[]}`))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "label", "message identifies the missing field")
	assert.Equal(t, 0, adapter.SetCalls, "no partial effects")
}

func TestImportRejectsWrongShapes(t *testing.T) {
	codec := NewCodec(testutil.NewAdapter(), newTestHost(), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		raw  string
	}{
		{"empty label", `{"label":"","documents":[]}`},
		{"label not a string", `{"label":3,"documents":[]}`},
		{"documents not a list", `{"label":"Q1","documents":"nope"}`},
		{"documents missing", `{"label":"Q1"}`},
		{"top level array", `["Q1"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := codec.Import(ctx, []byte(tt.raw))
			assert.False(t, result.Success)
			assert.Contains(t, result.Message, ErrCodeInvalidFormat)
		})
	}
}

func TestImportToleratesExtraFields(t *testing.T) {
	codec := NewCodec(testutil.NewAdapter(), newTestHost(), nil)
	raw := fmt.Sprintf(`{"label":"Q1","version":2,"documents":[{"title":"A","url":%q,"starred":true}]}`, docURL("docA"))

	result := codec.Import(context.Background(), []byte(raw))
	require.True(t, result.Success, result.Message)
	assert.Equal(t, 1, result.ImportedCount)
}

func TestExportImportScenario(t *testing.T) {
	// Export "Q1" from two documents, then re-import into a substrate where
	// only one of them already carries it.
	adapter := testutil.NewAdapter()
	seedRecord(t, adapter, "docA", "Report", []string{"Q1"})
	seedRecord(t, adapter, "docB", "Notes", []string{"Q1"})

	ctx := context.Background()
	payload, err := Export(ctx, index.New(adapter, nil), "Q1", "docA")
	require.NoError(t, err)
	require.Len(t, payload.Documents, 2)

	target := testutil.NewAdapter()
	seedRecord(t, target, "docA", "Report", []string{"Q1"})
	seedRecord(t, target, "docB", "Notes", []string{})

	codec := NewCodec(target, newTestHost(), nil)
	result := codec.ImportPayload(ctx, payload)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.ImportedCount)
	assert.True(t, loadRecord(t, target, "docB").HasLabel("Q1"))
}

func TestValidatePayloadMessages(t *testing.T) {
	ferr := validatePayload([]byte(`{"documents":[]}`))
	require.NotNil(t, ferr)
	assert.True(t, strings.Contains(ferr.Message, "label"))

	assert.Nil(t, validatePayload([]byte(`{"label":"Q1","documents":[]}`)))
}
