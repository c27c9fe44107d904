package processor

import (
	"github.com/nguyentantai21042004/study-scribe/internal/config"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"github.com/nguyentantai21042004/study-scribe/internal/media"
	"github.com/nguyentantai21042004/study-scribe/internal/transcriber"
	"github.com/nguyentantai21042004/study-scribe/pkg/executor"
)

type implProcessor struct {
	ffmpeg      config.FFmpegConfig
	tempDir     string
	classifier  *media.Classifier
	executor    executor.Executor
	transcriber transcriber.Transcriber
	logger      logger.Logger
	sem         *semaphore
}

// New creates a new Processor instance
func New(cfg *config.Config, classifier *media.Classifier, exec executor.Executor, tr transcriber.Transcriber, log logger.Logger) Processor {
	return &implProcessor{
		ffmpeg:      cfg.FFmpeg,
		tempDir:     cfg.Paths.Temp,
		classifier:  classifier,
		executor:    exec,
		transcriber: tr,
		logger:      log,
		sem:         newSemaphore(cfg.Performance.MaxConcurrent),
	}
}
