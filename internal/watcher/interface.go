package watcher

import "context"

// Watcher feeds media files dropped into the inbox to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is called once per media file that appears in the inbox.
type EventHandler func(ctx context.Context, filePath string) error
