package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"github.com/nguyentantai21042004/study-scribe/internal/media"
	"github.com/nguyentantai21042004/study-scribe/internal/model"
)

type implWatcher struct {
	inboxDir   string
	classifier *media.Classifier
	handler    EventHandler
	logger     logger.Logger
	watcher    *fsnotify.Watcher
	opts       Options
	semaphore  chan struct{}
	wg         sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Start handles files already in the inbox, then monitors it for new ones
// until ctx is done. It returns only after every dispatched handler has
// finished.
func (w *implWatcher) Start(ctx context.Context) error {
	defer w.wg.Wait()

	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.opts.MaxConcurrent, w.inboxDir)
	w.logger.Info(ctx, "Supported formats: %s %s",
		strings.Join(w.classifier.VideoExtensions(), " "),
		strings.Join(w.classifier.AudioExtensions(), " "))

	if err := w.scanExisting(ctx); err != nil {
		w.logger.Warn(ctx, "Failed to scan inbox: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.dispatch(ctx, event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.inboxDir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		w.dispatch(ctx, filepath.Join(w.inboxDir, name))
	}
	return nil
}

// dispatch hands path to the handler on its own goroutine, bounded by the
// semaphore. A path already being handled is ignored.
func (w *implWatcher) dispatch(ctx context.Context, path string) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || w.classifier.Classify(name) == model.MediaUnsupported {
		w.logger.Debug(ctx, "Ignoring non-media file: %s", path)
		return
	}

	if !w.claim(path) {
		return
	}

	w.logger.Info(ctx, "New media detected: %s", path)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.unclaim(path)

		select {
		case <-time.After(w.opts.SettleDelay):
		case <-ctx.Done():
			return
		}

		select {
		case w.semaphore <- struct{}{}:
		case <-ctx.Done():
			return
		}
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
}

func (w *implWatcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.inFlight[path]; busy {
		return false
	}
	w.inFlight[path] = struct{}{}
	return true
}

func (w *implWatcher) unclaim(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}
