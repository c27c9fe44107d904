package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"google.golang.org/genai"
)

const providerGemini = "gemini"

type geminiGenerator struct {
	mu         sync.Mutex
	clients    []*genai.Client
	currentKey int
	model      string
	retry      RetryPolicy
	logger     logger.Logger
}

// NewGemini creates a Generator backed by the Gemini API. With several keys
// the generator rotates to the next key when one is rate limited.
func NewGemini(ctx context.Context, apiKeys []string, model string, retry RetryPolicy, log logger.Logger) (Generator, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("gemini: at least one API key is required")
	}

	clients := make([]*genai.Client, 0, len(apiKeys))
	for i, key := range apiKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client %d: %w", i+1, err)
		}
		clients = append(clients, client)
	}

	return &geminiGenerator{
		clients: clients,
		model:   model,
		retry:   retry,
		logger:  log,
	}, nil
}

func (g *geminiGenerator) Model() string {
	return g.model
}

// Generate sends parts as a single user turn.
func (g *geminiGenerator) Generate(ctx context.Context, parts ...Part) (*Response, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts(toGenaiParts(parts), genai.RoleUser),
	}

	return withRetry(ctx, g.retry, g.logger, "gemini generate", func(ctx context.Context) (*Response, error) {
		client, idx := g.client()

		result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
		if err != nil {
			lerr := classify(providerGemini, geminiStatus(err), err)
			if lerr.StatusCode == 429 || isQuotaMessage(err.Error()) {
				g.rotateKey(ctx, idx)
			}
			return nil, lerr
		}

		text := responseText(result)
		if text == "" {
			return nil, &Error{Provider: providerGemini, Err: ErrEmptyResponse}
		}
		return &Response{Text: text, Model: g.model}, nil
	})
}

func (g *geminiGenerator) client() (*genai.Client, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clients[g.currentKey], g.currentKey
}

// rotateKey advances past idx unless another caller already rotated.
func (g *geminiGenerator) rotateKey(ctx context.Context, idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.clients) < 2 || g.currentKey != idx {
		return
	}
	g.currentKey = (g.currentKey + 1) % len(g.clients)
	g.logger.Warn(ctx, "Key %d rate limited, rotating to key %d", idx+1, g.currentKey+1)
}

func toGenaiParts(parts []Part) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.Data != nil {
			out = append(out, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		out = append(out, genai.NewPartFromText(p.Text))
	}
	return out
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}
