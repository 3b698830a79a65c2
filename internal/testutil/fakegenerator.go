package testutil

import (
	"context"

	"tasker/internal/genai"
)

// FakeGenerator is a deterministic genai.Generator for testing.
type FakeGenerator struct {
	// Tasks is returned on success.
	Tasks []genai.Task

	// Err, when set, is returned instead.
	Err error

	// Prompts records every prompt received.
	Prompts []string
}

// Generate implements genai.Generator.
func (f *FakeGenerator) Generate(ctx context.Context, prompt string) ([]genai.Task, error) {
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Tasks, nil
}
