package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-converts files as they change on disk.
type Watcher struct {
	pipeline *Pipeline
	watcher  *fsnotify.Watcher
	logger   *zap.Logger

	// watching is read by the event loop goroutine and written by
	// Start and Stop.
	watching atomic.Bool

	// debounce suppresses the duplicate write events editors emit.
	debounce  time.Duration
	lastEvent map[string]time.Time
}

// NewWatcher creates a watcher over the pipeline.
func NewWatcher(p *Pipeline, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		pipeline:  p,
		watcher:   fsw,
		logger:    logger,
		debounce:  500 * time.Millisecond,
		lastEvent: make(map[string]time.Time),
	}, nil
}

// Start begins watching the given directories recursively.
func (w *Watcher) Start(dirs []string) error {
	if w.watching.Load() {
		return fmt.Errorf("already watching")
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.watching.Store(true)
	go w.watchLoop()
	return nil
}

// Stop ends watching and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.watching.Store(false)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.watching.Load() {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if !hasDesiredExtension(event.Name) {
		return
	}

	if last, ok := w.lastEvent[event.Name]; ok && time.Since(last) < w.debounce {
		return
	}
	w.lastEvent[event.Name] = time.Now()

	issues, err := w.pipeline.ConvertFile(event.Name)
	if err != nil {
		w.logger.Error("conversion failed", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.logger.Info("converted",
		zap.String("file", event.Name),
		zap.Int("issues", len(issues)))
}
