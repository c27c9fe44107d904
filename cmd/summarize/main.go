package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/study-scribe/internal/config"
	"github.com/nguyentantai21042004/study-scribe/internal/llm"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"github.com/nguyentantai21042004/study-scribe/internal/summarizer"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	src := flag.String("src", "", "directory of transcript JSON files (default: paths.output)")
	dest := flag.String("dest", "summaries", "directory for the generated .md and .docx files")
	style := flag.String("style", string(summarizer.StyleStudyGuide), "summary style: brief, detailed or study_guide")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *src == "" {
		*src = cfg.Paths.Output
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)

	generator, err := llm.New(ctx, cfg.LLM, log)
	if err != nil {
		log.Error(ctx, "Failed to create %s client: %v", cfg.LLM.Provider, err)
		os.Exit(1)
	}

	s := summarizer.ParseStyle(*style)
	if string(s) != *style {
		log.Warn(ctx, "Unknown style %q, using %s", *style, s)
	}

	report, err := summarizer.New(generator, log).SummarizeDir(ctx, *src, *dest, s)
	if err != nil {
		log.Error(ctx, "Summarize failed: %v", err)
		os.Exit(1)
	}
	if report.Failed > 0 {
		os.Exit(2)
	}
}
