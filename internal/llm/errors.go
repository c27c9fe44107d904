package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Error wraps a failed remote call. Transient errors (rate limits, 5xx,
// network) may succeed on retry; permanent ones (auth, bad request) will not.
type Error struct {
	Provider   string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *Error) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s error (status %d): %v", e.Provider, kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s error: %v", e.Provider, kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a remote failure worth retrying.
func IsTransient(err error) bool {
	var lerr *Error
	return errors.As(err, &lerr) && lerr.Transient
}

// ErrEmptyResponse is returned when the backend answers without any text.
var ErrEmptyResponse = errors.New("empty response")

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusRequestTimeout ||
		code >= http.StatusInternalServerError
}

// classify wraps err into *Error using the status code when the SDK exposes one,
// falling back to message inspection for quota errors.
func classify(provider string, code int, err error) *Error {
	lerr := &Error{Provider: provider, StatusCode: code, Err: err}

	switch {
	case code != 0:
		lerr.Transient = transientStatus(code)
	case errors.Is(err, context.Canceled):
		lerr.Transient = false
	case errors.Is(err, context.DeadlineExceeded):
		lerr.Transient = true
	default:
		var netErr net.Error
		if errors.As(err, &netErr) {
			lerr.Transient = true
		} else {
			lerr.Transient = isQuotaMessage(err.Error())
		}
	}

	return lerr
}

func isQuotaMessage(msg string) bool {
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "UNAVAILABLE")
}
