// Package genai turns free-text prompts into task lists using an
// OpenAI-compatible chat-completion endpoint.
package genai

import (
	"context"
	"errors"
)

// ErrNoAPIKey is returned when generation is requested without a configured
// API key.
var ErrNoAPIKey = errors.New("genai: no API key configured")

// Task is a generated task record. Text is required; category and priority
// are optional and default to empty/false.
type Task struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Priority bool   `json:"priority"`
}

// Generator produces task records from a free-text prompt. Implementations
// make a single blocking call with no internal retry; callers decide how to
// report failure.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]Task, error)
}
