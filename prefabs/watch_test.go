package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsSpecAndLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("name: p"), 0o644))

	select {
	case c := <-w.Events:
		assert.Equal(t, "player.yaml", filepath.Base(c.Path))
		assert.Equal(t, SpecChange, c.Kind)
		assert.Equal(t, "player", c.Name())
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for player.yaml")
	}
}

func TestWatcherCloseEndsEvents(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestFileKinds(t *testing.T) {
	assert.True(t, IsSpecFile("prefabs/player.yaml"))
	assert.True(t, IsSpecFile("A.YML"))
	assert.False(t, IsSpecFile("levels/0.txt"))
	assert.True(t, IsLevelFile("levels/0.txt"))
	assert.False(t, IsLevelFile("levels/0.json"))

	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{path: "prefabs/enemy.yaml", kind: SpecChange, ok: true},
		{path: "levels/2.TXT", kind: LevelChange, ok: true},
		{path: "levels/2.txt~", ok: false},
		{path: "README.md", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, ok := ClassifyChange(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}

	assert.Equal(t, "2", Change{Path: "levels/2.txt"}.Name())
	assert.Equal(t, "level", LevelChange.String())
}
