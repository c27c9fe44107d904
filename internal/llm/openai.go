package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"github.com/sashabaranov/go-openai"
)

const providerOpenAI = "openai"

// whisper wants a filename to infer the container
var audioFileNames = map[string]string{
	"audio/mp3":  "audio.mp3",
	"audio/mpeg": "audio.mp3",
	"audio/wav":  "audio.wav",
	"audio/mp4":  "audio.m4a",
	"audio/aac":  "audio.aac",
	"audio/ogg":  "audio.ogg",
	"audio/flac": "audio.flac",
}

type openAIGenerator struct {
	client *openai.Client
	model  string
	retry  RetryPolicy
	logger logger.Logger
}

// NewOpenAI creates a Generator backed by OpenAI. Requests carrying an audio
// part go to the Whisper transcription endpoint; text-only requests go to
// chat completions with model.
func NewOpenAI(apiKey, model string, retry RetryPolicy, log logger.Logger) (Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	return &openAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
		retry:  retry,
		logger: log,
	}, nil
}

func (g *openAIGenerator) Model() string {
	return g.model
}

func (g *openAIGenerator) Generate(ctx context.Context, parts ...Part) (*Response, error) {
	var prompt strings.Builder
	var audio *Part
	for i := range parts {
		if parts[i].Data != nil {
			if audio != nil {
				return nil, &Error{Provider: providerOpenAI, Err: errors.New("only one audio part per request is supported")}
			}
			audio = &parts[i]
			continue
		}
		if prompt.Len() > 0 {
			prompt.WriteString("\n\n")
		}
		prompt.WriteString(parts[i].Text)
	}

	if audio != nil {
		return withRetry(ctx, g.retry, g.logger, "openai transcription", func(ctx context.Context) (*Response, error) {
			return g.transcribe(ctx, *audio, prompt.String())
		})
	}
	return withRetry(ctx, g.retry, g.logger, "openai chat", func(ctx context.Context) (*Response, error) {
		return g.chat(ctx, prompt.String())
	})
}

// transcribe sends audio to Whisper. The request's text parts travel as the
// transcription prompt.
func (g *openAIGenerator) transcribe(ctx context.Context, audio Part, prompt string) (*Response, error) {
	name, ok := audioFileNames[audio.MIMEType]
	if !ok {
		return nil, &Error{Provider: providerOpenAI, Err: fmt.Errorf("unsupported audio mime type %q", audio.MIMEType)}
	}

	resp, err := g.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: name,
		Reader:   bytes.NewReader(audio.Data),
		Prompt:   prompt,
	})
	if err != nil {
		return nil, classify(providerOpenAI, openAIStatus(err), err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return nil, &Error{Provider: providerOpenAI, Err: ErrEmptyResponse}
	}
	return &Response{Text: resp.Text, Model: openai.Whisper1}, nil
}

func (g *openAIGenerator) chat(ctx context.Context, prompt string) (*Response, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return nil, classify(providerOpenAI, openAIStatus(err), err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, &Error{Provider: providerOpenAI, Err: ErrEmptyResponse}
	}
	return &Response{Text: resp.Choices[0].Message.Content, Model: g.model}, nil
}

func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
