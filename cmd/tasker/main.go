// Package main is the entry point for the tasker CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasker/internal/backend/jsonfile"
	"tasker/internal/cli"
	"tasker/internal/commands"
	"tasker/internal/config"
	"tasker/internal/genai"
	"tasker/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory. The generator is wired only when an API key
	// is configured; generation without one reports an auth error.
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		var gen genai.Generator
		if key := cfg.APIKey(); key != "" {
			client, err := genai.NewOpenAIClient(key, cfg.BaseURL(), cfg.Model())
			if err != nil {
				return nil, err
			}
			gen = client
		}
		return jsonfile.New(cfg, gen)
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
