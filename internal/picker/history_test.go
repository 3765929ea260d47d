package picker

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSQLiteHistory(t *testing.T, capacity int) *SQLiteHistory {
	t.Helper()

	h, err := NewSQLiteHistory(":memory:", capacity)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = h.Close()
	})
	return h
}

func histories(t *testing.T, capacity int) map[string]History {
	return map[string]History{
		"memory": NewMemoryHistory(capacity),
		"sqlite": createTestSQLiteHistory(t, capacity),
	}
}

func TestHistory_EvictsOldestBeyondCapacity(t *testing.T) {
	for name, h := range histories(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 0; i < 5; i++ {
				require.NoError(t, h.Push(ctx, fmt.Sprintf("k%d", i)))
			}

			recent, err := h.Recent(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"k2", "k3", "k4"}, recent)
		})
	}
}

func TestHistory_Reset(t *testing.T) {
	for name, h := range histories(t, DefaultCapacity) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, h.Push(ctx, "a"))
			require.NoError(t, h.Push(ctx, "b"))
			require.NoError(t, h.Reset(ctx))

			recent, err := h.Recent(ctx)
			require.NoError(t, err)
			assert.Empty(t, recent)
		})
	}
}

func TestNewMemoryHistory_DefaultsCapacity(t *testing.T) {
	h := NewMemoryHistory(0)
	ctx := context.Background()
	for i := 0; i < DefaultCapacity+10; i++ {
		require.NoError(t, h.Push(ctx, fmt.Sprintf("k%d", i)))
	}
	assert.Equal(t, DefaultCapacity, h.Len())
}

func TestSQLiteHistory_Count(t *testing.T) {
	h := createTestSQLiteHistory(t, 2)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, h.Push(ctx, k))
	}

	count, err := h.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLiteHistory_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	h, err := NewSQLiteHistory(dbPath, DefaultCapacity)
	require.NoError(t, err)
	require.NoError(t, h.Push(ctx, "kept"))
	require.NoError(t, h.Close())

	reopened, err := NewSQLiteHistory(dbPath, DefaultCapacity)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	recent, err := reopened.Recent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, recent)
}

func TestPicker_WithSQLiteHistory(t *testing.T) {
	h := createTestSQLiteHistory(t, DefaultCapacity)
	p := New(h)
	ctx := context.Background()
	candidates := []string{"x", "y", "z"}

	seen := make(map[string]bool)
	for i := 0; i < len(candidates); i++ {
		got, err := Pick(ctx, p, candidates, identity)
		require.NoError(t, err)
		assert.False(t, seen[got])
		seen[got] = true
	}

	_, err := Pick(ctx, p, candidates, identity)
	require.NoError(t, err)

	count, err := h.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
