package media

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/study-scribe/internal/logger"
)

// Cleanup removes intermediate files. It is best-effort: missing files are
// ignored and other failures are logged as warnings, never returned.
func Cleanup(ctx context.Context, log logger.Logger, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			log.Warn(ctx, "Failed to cleanup temp file %s: %v", p, err)
			continue
		}
		log.Debug(ctx, "Cleaned up temp file: %s", p)
	}
}
