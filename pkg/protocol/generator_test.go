package protocol

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora-fiscalizacao-be/internal/entity"
	"aurora-fiscalizacao-be/internal/pkg/logger"
)

func fixedClock() time.Time {
	return time.Date(2025, 12, 8, 10, 30, 0, 0, time.Local)
}

func newTestGenerator(t *testing.T, path string) *Generator {
	t.Helper()
	g := NewGenerator(NewFileSequenceStore(path), logger.Noop{})
	g.now = fixedClock
	return g
}

func TestGenerateFreshRunStartsAtOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protocol_sequence.txt")
	g := newTestGenerator(t, path)

	assert.Equal(t, "2025.12.08.1.0001", g.Generate(entity.ComplaintTypeDirtyLot))
	assert.Equal(t, "2025.12.08.1.0002", g.Generate(entity.ComplaintTypeDirtyLot))
}

func TestGenerateTypeCodes(t *testing.T) {
	tests := []struct {
		name     string
		typeKey  string
		wantCode string
	}{
		{name: "dirty lot", typeKey: entity.ComplaintTypeDirtyLot, wantCode: "1"},
		{name: "company", typeKey: entity.ComplaintTypeCompany, wantCode: "2"},
		{name: "occupation", typeKey: entity.ComplaintTypeOccupation, wantCode: "3"},
		{name: "unknown falls back to reserved code", typeKey: "barulho", wantCode: "9"},
		{name: "empty key falls back too", typeKey: "", wantCode: "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seq.txt")
			g := newTestGenerator(t, path)

			id := g.Generate(tt.typeKey)
			parts := strings.Split(id, ".")
			require.Len(t, parts, 5)
			assert.Equal(t, tt.wantCode, parts[3])
		})
	}
}

func TestGenerateContinuesAfterRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.txt")

	g1 := newTestGenerator(t, path)
	g1.Generate(entity.ComplaintTypeDirtyLot)
	g1.Generate(entity.ComplaintTypeDirtyLot)

	// A new generator over the same file simulates a process restart.
	g2 := newTestGenerator(t, path)
	assert.Equal(t, "2025.12.08.2.0003", g2.Generate(entity.ComplaintTypeCompany))
}

func TestGenerateCorruptSequenceFileDefaultsToZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.txt")
	require.NoError(t, os.WriteFile(path, []byte("not-a-number"), 0644))

	g := newTestGenerator(t, path)
	assert.Equal(t, "2025.12.08.1.0001", g.Generate(entity.ComplaintTypeDirtyLot))
}

func TestGenerateWidensBeyondFourDigits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.txt")
	require.NoError(t, os.WriteFile(path, []byte("9999"), 0644))

	g := newTestGenerator(t, path)
	id := g.Generate(entity.ComplaintTypeDirtyLot)
	assert.True(t, strings.HasSuffix(id, ".10000"), "got %q", id)
}

func TestGeneratePersistsBeforeReturning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.txt")
	g := newTestGenerator(t, path)

	g.Generate(entity.ComplaintTypeDirtyLot)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))
}

func TestGenerateSurvivesSaveFailure(t *testing.T) {
	// Pointing the store at a directory makes every Save fail.
	dir := t.TempDir()
	g := NewGenerator(NewFileSequenceStore(dir), logger.Noop{})
	g.now = fixedClock

	first := g.Generate(entity.ComplaintTypeDirtyLot)
	second := g.Generate(entity.ComplaintTypeDirtyLot)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(second, ".0002"))
}

func TestGenerateConcurrentIssuanceIsUnique(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.txt")
	g := newTestGenerator(t, path)

	const n = 50
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = g.Generate(entity.ComplaintTypeDirtyLot)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		require.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
	}
}

func TestFileSequenceStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.txt")
	store := NewFileSequenceStore(path)

	value, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, value)

	require.NoError(t, store.Save(42))
	value, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestFileSequenceStoreRejectsNegative(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.txt")
	require.NoError(t, os.WriteFile(path, []byte("-5"), 0644))

	_, err := NewFileSequenceStore(path).Load()
	assert.Error(t, err)
}

func TestFileSequenceStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileSequenceStore(filepath.Join(dir, "seq.txt"))
	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Save(i))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "seq.txt", entries[0].Name())
}
