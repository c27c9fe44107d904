package summarizer

import "context"

// Summarizer turns transcript text into a generated summary.
type Summarizer interface {
	// Summarize submits text with the template for style as one request.
	Summarize(ctx context.Context, text string, style Style) (string, error)
	// SummarizeDir summarizes every stored transcript JSON in srcDir and writes
	// <name>.md and <name>.docx into destDir. Per-file failures are counted,
	// logged and skipped.
	SummarizeDir(ctx context.Context, srcDir, destDir string, style Style) (Report, error)
}

// Report counts the outcome of a SummarizeDir run.
type Report struct {
	Succeeded int
	Failed    int
	Skipped   int
}
