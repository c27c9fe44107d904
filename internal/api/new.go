package api

import (
	"github.com/nguyentantai21042004/study-scribe/internal/config"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"github.com/nguyentantai21042004/study-scribe/internal/media"
	"github.com/nguyentantai21042004/study-scribe/internal/model"
	"github.com/nguyentantai21042004/study-scribe/internal/processor"
	"github.com/nguyentantai21042004/study-scribe/internal/session"
	"github.com/nguyentantai21042004/study-scribe/internal/summarizer"
)

// RecordSaver persists a finished transcript and returns where it went.
type RecordSaver interface {
	Save(rec *model.TranscriptRecord, filename string) (string, error)
}

// Dependencies are the components the HTTP surface drives.
type Dependencies struct {
	Config     *config.Config
	Classifier *media.Classifier
	Stager     *media.Stager
	Processor  processor.Processor
	Summarizer summarizer.Summarizer
	Store      RecordSaver
	Sessions   *session.Manager
	Logger     logger.Logger
}

// Handler serves the browser page and the JSON API.
type Handler struct {
	cfg        *config.Config
	classifier *media.Classifier
	stager     *media.Stager
	processor  processor.Processor
	summarizer summarizer.Summarizer
	store      RecordSaver
	sessions   *session.Manager
	logger     logger.Logger
}

// New creates a Handler.
func New(deps Dependencies) *Handler {
	return &Handler{
		cfg:        deps.Config,
		classifier: deps.Classifier,
		stager:     deps.Stager,
		processor:  deps.Processor,
		summarizer: deps.Summarizer,
		store:      deps.Store,
		sessions:   deps.Sessions,
		logger:     deps.Logger,
	}
}
