package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/study-scribe/internal/api"
	"github.com/nguyentantai21042004/study-scribe/internal/config"
	"github.com/nguyentantai21042004/study-scribe/internal/llm"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"github.com/nguyentantai21042004/study-scribe/internal/media"
	"github.com/nguyentantai21042004/study-scribe/internal/processor"
	"github.com/nguyentantai21042004/study-scribe/internal/session"
	"github.com/nguyentantai21042004/study-scribe/internal/store"
	"github.com/nguyentantai21042004/study-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/study-scribe/internal/transcriber"
	"github.com/nguyentantai21042004/study-scribe/internal/watcher"
	"github.com/nguyentantai21042004/study-scribe/pkg/executor"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	flag.Parse()

	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Study Scribe")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	classifier, err := media.NewClassifier(cfg.Upload.VideoFormats, cfg.Upload.AudioFormats)
	if err != nil {
		log.Error(ctx, "Invalid upload formats: %v", err)
		os.Exit(1)
	}

	generator, err := llm.New(ctx, cfg.LLM, log)
	if err != nil {
		log.Error(ctx, "Failed to create %s client: %v", cfg.LLM.Provider, err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	proc := processor.New(cfg, classifier, exec, transcriber.New(generator, log), log)
	transcripts := store.New(cfg.Paths.Output)

	handler := api.New(api.Dependencies{
		Config:     cfg,
		Classifier: classifier,
		Stager:     media.NewStager(cfg.Paths.Temp),
		Processor:  proc,
		Summarizer: summarizer.New(generator, log),
		Store:      transcripts,
		Sessions:   session.NewManager(cfg.Server.SessionTTL),
		Logger:     log,
	})

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	var inbox watcher.Watcher
	inboxDone := make(chan struct{})
	if cfg.Paths.Inbox != "" {
		inbox, err = watcher.New(cfg.Paths.Inbox, classifier,
			watcher.NewPipelineHandler(proc, transcripts, log), log,
			watcher.Options{MaxConcurrent: cfg.Performance.MaxConcurrent})
		if err != nil {
			log.Error(ctx, "Failed to create inbox watcher: %v", err)
			os.Exit(1)
		}
		defer inbox.Stop()

		go func() {
			defer close(inboxDone)
			if err := inbox.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("inbox watcher: %w", err)
			}
		}()
	} else {
		close(inboxDone)
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Listening on %s", cfg.Server.Addr)
	log.Info(ctx, "Model: %s (%s)", generator.Model(), cfg.LLM.Provider)
	log.Info(ctx, "Transcripts: %s", cfg.Paths.Output)
	if inbox != nil {
		log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
	}
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "%v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "HTTP shutdown: %v", err)
	}

	// In-flight inbox jobs still have to remove their extracted audio.
	select {
	case <-inboxDone:
	case <-shutdownCtx.Done():
		log.Warn(shutdownCtx, "Inbox jobs still running after %s", shutdownTimeout)
	}

	log.Info(shutdownCtx, "Study Scribe stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Temp, cfg.Paths.Output}
	if cfg.Paths.Inbox != "" {
		dirs = append(dirs, cfg.Paths.Inbox)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
