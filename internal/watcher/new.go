package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"github.com/nguyentantai21042004/study-scribe/internal/media"
)

// Options tune the watcher. Zero values select the defaults.
type Options struct {
	MaxConcurrent int
	// SettleDelay is how long a new file is left alone before handling so the
	// writer can finish.
	SettleDelay time.Duration
}

// New creates a new Watcher instance with concurrency control
func New(inboxDir string, classifier *media.Classifier, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 500 * time.Millisecond
	}

	return &implWatcher{
		inboxDir:   inboxDir,
		classifier: classifier,
		handler:    handler,
		logger:     log,
		watcher:    watcher,
		opts:       opts,
		semaphore:  make(chan struct{}, opts.MaxConcurrent),
		inFlight:   make(map[string]struct{}),
	}, nil
}
