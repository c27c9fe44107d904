package media

import "errors"

var (
	// ErrUnsupportedMedia is returned for extensions in neither configured set.
	ErrUnsupportedMedia = errors.New("unsupported file type")
	// ErrFileTooLarge is returned when an upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")
)
