package processor

import (
	"context"

	"github.com/nguyentantai21042004/study-scribe/internal/model"
)

// Request names a staged media file and the name the user uploaded it as.
type Request struct {
	Path         string
	OriginalName string
}

// Processor turns one staged media file into a transcript record.
type Processor interface {
	Process(ctx context.Context, req Request) (*model.TranscriptRecord, error)
}
