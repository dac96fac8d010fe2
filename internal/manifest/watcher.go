package manifest

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/modboot/pkg/lifecycle"
	"github.com/bft-labs/modboot/pkg/log"
)

// Watcher monitors a manifest file while the application runs. The lifecycle
// is one-shot, so a changed manifest cannot be applied live; the watcher
// logs that a restart is required instead.
type Watcher struct {
	path   string
	logger log.Logger

	mu   sync.Mutex
	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher for the manifest at path.
func NewWatcher(path string, logger log.Logger) *Watcher {
	return &Watcher{path: path, logger: logger}
}

// Start begins watching the manifest's directory. Editors replace files
// rather than rewriting them in place, so the directory is watched and
// events are filtered by base name.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	w.mu.Lock()
	w.fsw = fsw
	w.done = make(chan struct{})
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(fsw, w.done)

	w.logger.Debug("manifest watcher started", log.String("path", w.path))
	return nil
}

// Stop shuts the watcher down and waits for its goroutine to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	fsw := w.fsw
	done := w.done
	w.fsw = nil
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	close(done)
	err := fsw.Close()
	w.wg.Wait()
	return err
}

// Module wraps the watcher as a lifecycle module so it starts after the
// manifest has been consumed and stops during ordered shutdown.
func (w *Watcher) Module() lifecycle.Module {
	return lifecycle.Module{
		Name:            "manifest-watcher",
		Startup:         w.Start,
		Shutdown:        w.Stop,
		ShutdownTimeout: 5 * time.Second,
	}
}

func (w *Watcher) loop(fsw *fsnotify.Watcher, done chan struct{}) {
	defer w.wg.Done()

	base := filepath.Base(w.path)
	for {
		select {
		case <-done:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Warn("manifest changed on disk; restart to apply the new boot plan",
				log.String("path", w.path),
			)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("manifest watcher error", log.Err(err))
		}
	}
}
