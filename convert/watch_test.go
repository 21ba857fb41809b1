package convert

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfix-labs/cfix/internal/ast"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	p := NewPipeline(nil, nil, DefaultConfig(), nil)
	w, err := NewWatcher(p, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func TestHandleFileEventConvertsTreeFile(t *testing.T) {
	w := newTestWatcher(t)
	path := writeTreeFile(t, t.TempDir(), "prog.json", devirtUnit())

	w.handleFileEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})

	main := readTreeFile(t, path).Lookup("main")
	require.NotNil(t, main)
	assert.Equal(t, "hello();", main.Body.Stmts[0].String())
	assert.True(t, main.ReturnType.IsVoid())
}

func TestHandleFileEventIgnoresOtherOps(t *testing.T) {
	w := newTestWatcher(t)
	path := writeTreeFile(t, t.TempDir(), "prog.json", devirtUnit())
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	w.handleFileEvent(fsnotify.Event{Name: path, Op: fsnotify.Chmod})
	w.handleFileEvent(fsnotify.Event{Name: path, Op: fsnotify.Remove})

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "only write and create events trigger conversion")
}

func TestHandleFileEventIgnoresOtherExtensions(t *testing.T) {
	w := newTestWatcher(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	w.handleFileEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "plain text", string(data))
}

func TestHandleFileEventDebounce(t *testing.T) {
	w := newTestWatcher(t)
	path := writeTreeFile(t, t.TempDir(), "prog.json", devirtUnit())

	w.handleFileEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	require.True(t, readTreeFile(t, path).Lookup("main").ReturnType.IsVoid())

	// Put the unconverted tree back; a second event inside the
	// debounce window must be dropped.
	data, err := ast.EncodeUnit(devirtUnit())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	w.handleFileEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	assert.False(t, readTreeFile(t, path).Lookup("main").ReturnType.IsVoid())

	// Once the window has passed the same path converts again.
	w.lastEvent[path] = time.Now().Add(-time.Second)
	w.handleFileEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	assert.True(t, readTreeFile(t, path).Lookup("main").ReturnType.IsVoid())
}

func TestWatcherStartTwice(t *testing.T) {
	w := newTestWatcher(t)
	require.NoError(t, w.Start([]string{t.TempDir()}))
	assert.Error(t, w.Start([]string{t.TempDir()}))
}
