package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/wirecheck/packages/rawhttp"
	"github.com/abdul-hamid-achik/wirecheck/packages/scenario"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleResult(name string, raw []byte, err error) *scenario.Result {
	return &scenario.Result{
		Scenario: &scenario.Scenario{
			Name:    name,
			Request: rawhttp.NewRequest("GET", "/").AddHeader("Host", "localhost:8080"),
		},
		RequestBytes: []byte("GET / HTTP/1.1\r\nHost: localhost:8080\r\n\r\n"),
		Raw:          raw,
		StartedAt:    time.Now(),
		Duration:     42 * time.Millisecond,
		Err:          err,
	}
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	runID := NewRunID()

	require.NoError(t, store.Record(runID, sampleResult("get-root",
		[]byte("HTTP/1.1 200 OK\r\n\r\nhello"), nil)))
	require.NoError(t, store.Record(runID, sampleResult("get-missing",
		[]byte("HTTP/1.1 404 Not Found\r\n\r\n"), nil)))

	entries, err := store.Recent(runID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "get-missing", entries[0].Scenario)
	assert.Equal(t, 404, entries[0].StatusCode)
	assert.Equal(t, "get-root", entries[1].Scenario)
	assert.Equal(t, 200, entries[1].StatusCode)
	assert.Equal(t, 42*time.Millisecond, entries[1].Duration)
	assert.Contains(t, string(entries[1].Response), "hello")
}

func TestStore_RecordFailure(t *testing.T) {
	store := openTestStore(t)

	result := sampleResult("unreachable", nil, errors.New("connection refused"))
	require.NoError(t, store.Record(NewRunID(), result))

	entries, err := store.Recent("", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "connection refused", entries[0].Error)
	assert.Zero(t, entries[0].StatusCode, "no status line to parse")
	assert.Empty(t, entries[0].Response)
}

func TestStore_RecentFiltersByRun(t *testing.T) {
	store := openTestStore(t)
	first := NewRunID()
	second := NewRunID()

	require.NoError(t, store.Record(first, sampleResult("a", []byte("HTTP/1.1 200 OK\r\n\r\n"), nil)))
	require.NoError(t, store.Record(second, sampleResult("b", []byte("HTTP/1.1 200 OK\r\n\r\n"), nil)))

	entries, err := store.Recent(first, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Scenario)
}

func TestStore_RecentHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	runID := NewRunID()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(runID, sampleResult("s", []byte("HTTP/1.1 200 OK\r\n\r\n"), nil)))
	}

	entries, err := store.Recent(runID, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestNewRunID_Unique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
}
