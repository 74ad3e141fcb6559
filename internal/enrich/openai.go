package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

const (
	// DefaultBaseURL targets Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is a fast, cheap model suited to one-line descriptions.
	DefaultModel = "llama-3.1-8b-instant"
)

const systemPromptFormat = `You are the AI oracle for a people directory.
The user searched for: %q

You are provided with a list of people who matched this search.
Generate a ONE-SENTENCE description for each person, explaining why they
match the query or highlighting their coolest work.

- Keep it punchy, exciting, and under 15 words per person.
- Use 3rd person.
- Return ONLY a JSON object where the key is the person's name and the
  value is the description.
- Example: {"Jane Roe": "Ships reliable systems fast."}`

// ClientConfig holds configuration for the chat-completion annotator.
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// DefaultClientConfig returns the default annotator configuration.
func DefaultClientConfig(apiKey string) ClientConfig {
	return ClientConfig{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		Model:      DefaultModel,
		MaxRetries: 2,
		RetryDelay: time.Second,
		Timeout:    30 * time.Second,
	}
}

// OpenAIAnnotator calls an OpenAI-compatible chat-completion endpoint
// and parses the name-keyed JSON mapping out of the response content.
type OpenAIAnnotator struct {
	client     *openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
}

// Ensure OpenAIAnnotator implements Annotator.
var _ Annotator = (*OpenAIAnnotator)(nil)

// NewOpenAIAnnotator creates an annotator from the given configuration.
func NewOpenAIAnnotator(cfg ClientConfig) (*OpenAIAnnotator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("annotation API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIAnnotator{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		timeout:    timeout,
	}, nil
}

// contextRecord is the wire shape of a result-set record. Only fields
// useful for describing the person are sent.
type contextRecord struct {
	Name            string `json:"name"`
	Title           string `json:"title,omitempty"`
	CurrentProject  string `json:"currentProject,omitempty"`
	SelfDescription string `json:"selfDescription,omitempty"`
}

// Annotate implements Annotator.
func (a *OpenAIAnnotator) Annotate(ctx context.Context, query string, records []roster.Record) (Annotations, error) {
	if len(records) == 0 {
		return Annotations{}, nil
	}

	contextData := make([]contextRecord, len(records))
	for i, rec := range records {
		contextData[i] = contextRecord{
			Name:            rec.Name,
			Title:           rec.Title,
			CurrentProject:  rec.CurrentProject,
			SelfDescription: rec.SelfDescription,
		}
	}
	payload, err := json.Marshal(contextData)
	if err != nil {
		return nil, fmt.Errorf("marshal context data: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(systemPromptFormat, query),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: string(payload),
			},
		},
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(a.retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		resp, err := a.client.CreateChatCompletion(callCtx, req)
		cancel()
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		annotations, err := ParseAnnotations(resp.Choices[0].Message.Content)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		return annotations, nil
	}

	return nil, fmt.Errorf("annotate after %d attempts: %w", a.maxRetries+1, lastErr)
}

// ParseAnnotations decodes the name-keyed JSON mapping from response
// content. A body that fails to parse is a total failure for the
// request; no partial trust of malformed content.
func ParseAnnotations(content string) (Annotations, error) {
	cleaned := stripCodeFences(content)
	if cleaned == "" {
		return nil, fmt.Errorf("empty annotation content")
	}

	var annotations Annotations
	if err := json.Unmarshal([]byte(cleaned), &annotations); err != nil {
		return nil, fmt.Errorf("parse annotation mapping: %w", err)
	}
	return annotations, nil
}

// stripCodeFences removes a surrounding markdown code block, which
// models emit despite being told not to.
func stripCodeFences(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag like "json" on the fence line.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if len(first) <= 8 && !strings.ContainsAny(first, "{}") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
