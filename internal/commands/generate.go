package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/genai"
	"tasker/internal/service"
)

func init() {
	Register(&GenerateCmd{})
}

// GenerateCmd implements the generate command.
type GenerateCmd struct {
	useAI bool
}

// SetUseAI sets the AI flag (for testing).
func (c *GenerateCmd) SetUseAI(useAI bool) {
	c.useAI = useAI
}

func (c *GenerateCmd) Name() string      { return "generate" }
func (c *GenerateCmd) Aliases() []string { return []string{"gen"} }
func (c *GenerateCmd) Synopsis() string  { return "Generate tasks from a prompt" }
func (c *GenerateCmd) Usage() string     { return "tasker --user <name> generate [--ai] <prompt...>" }
func (c *GenerateCmd) NeedsStore() bool  { return true }
func (c *GenerateCmd) NeedsUser() bool   { return true }

func (c *GenerateCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.useAI, "ai", false, "")
}

func (c *GenerateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	prompt := strings.Join(args, " ")
	if strings.TrimSpace(prompt) == "" {
		fmt.Fprintln(errOut, "error: prompt required")
		return exitcode.UserError
	}

	tasks, err := svc.Generate(ctx, cfg.User, prompt, c.useAI)
	if err != nil {
		// AI failure is surfaced; the naive splitter is never an
		// automatic fallback
		if errors.Is(err, genai.ErrNoAPIKey) {
			fmt.Fprintf(errOut, "error: no API key configured (set %s or run: tasker login <key>)\n", config.APIKeyEnv)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: generation failed: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "generated and added %d tasks\n", len(tasks))
	}
	return exitcode.Success
}
