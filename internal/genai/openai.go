package genai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = `You are a task list generator. Given a request, respond with
a JSON object of the form {"tasks": [{"text": "...", "category": "...", "priority": false}, ...]}.
Each task needs a short imperative "text"; "category" and "priority" are optional.
Respond with JSON only, no prose.`

// OpenAIClient generates tasks through an OpenAI-compatible chat-completion
// endpoint.
type OpenAIClient struct {
	llm llms.Model
}

// NewOpenAIClient creates a generator for the given API key. baseURL and
// model may be empty to use the service defaults.
func NewOpenAIClient(apiKey, baseURL, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = defaultModel
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
		openai.WithResponseFormat(&openai.ResponseFormat{Type: "json_object"}),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("genai: create client: %w", err)
	}
	return &OpenAIClient{llm: llm}, nil
}

// Generate implements Generator with a single blocking round trip.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) ([]Task, error) {
	resp, err := c.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithTemperature(0.2),
	)
	if err != nil {
		return nil, fmt.Errorf("genai: generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("genai: empty response")
	}
	return ParseTasks(resp.Choices[0].Content)
}
