package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/study-scribe/internal/llm"
	"github.com/nguyentantai21042004/study-scribe/internal/store"
)

func (s *implSummarizer) Summarize(ctx context.Context, text string, style Style) (string, error) {
	prompt := BuildPrompt(text, style)

	s.logger.Info(ctx, "Summarizing %d characters (%s) with %s", len(text), ParseStyle(string(style)), s.generator.Model())

	resp, err := s.generator.Generate(ctx, llm.Text(prompt))
	if err != nil {
		s.logger.Error(ctx, "Summarization error: %v", err)
		return "", fmt.Errorf("summarize: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}

// SummarizeDir reads all transcript records from srcDir, summarizes each one
// and writes a markdown and a docx file per record into destDir. Records that
// already have a markdown summary in destDir are skipped.
func (s *implSummarizer) SummarizeDir(ctx context.Context, srcDir, destDir string, style Style) (Report, error) {
	var report Report

	files, err := discoverTranscripts(srcDir)
	if err != nil {
		return report, fmt.Errorf("discover transcripts: %w", err)
	}

	if len(files) == 0 {
		s.logger.Info(ctx, "No transcript files found in %s", srcDir)
		return report, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return report, fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d transcript files to summarize", len(files))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		mdPath := filepath.Join(destDir, name+".md")

		if _, err := os.Stat(mdPath); err == nil {
			s.logger.Debug(ctx, "[%d/%d] Already summarized: %s", i+1, len(files), name)
			report.Skipped++
			continue
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(files), name)

		if err := s.summarizeFile(ctx, path, destDir, name, style); err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			report.Failed++
			if errors.Is(err, context.Canceled) {
				return report, err
			}
			continue
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
		report.Succeeded++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed, %d skipped",
		report.Succeeded, report.Failed, report.Skipped)
	return report, nil
}

func (s *implSummarizer) summarizeFile(ctx context.Context, path, destDir, name string, style Style) error {
	rec, err := store.Load(path)
	if err != nil {
		return err
	}

	summary, err := s.Summarize(ctx, rec.Text, style)
	if err != nil {
		return err
	}

	title := rec.OriginalFile
	if title == "" {
		title = name
	}

	md := fmt.Sprintf("# %s\n\n_%s · %s_\n\n%s\n",
		title,
		style.Label(),
		s.now().Format("2006-01-02 15:04"),
		summary,
	)

	// The markdown file marks the record as done, so it is written last.
	docxPath := filepath.Join(destDir, name+".docx")
	if err := ExportMarkdownDocx(title, summary, docxPath); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}

	mdPath := filepath.Join(destDir, name+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".json" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
