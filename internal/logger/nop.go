package logger

import "io"

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return NewWithFormat("panic", "text", io.Discard)
}
