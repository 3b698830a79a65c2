package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/output"
	"tasker/internal/service"
	"tasker/internal/store"
)

func init() {
	Register(&RecommendCmd{})
}

// RecommendCmd implements the recommend command.
type RecommendCmd struct{}

func (c *RecommendCmd) Name() string      { return "recommend" }
func (c *RecommendCmd) Aliases() []string { return nil }
func (c *RecommendCmd) Synopsis() string  { return "Pick and select the next task to work on" }
func (c *RecommendCmd) Usage() string     { return "tasker --user <name> recommend [type|dispersed]" }
func (c *RecommendCmd) NeedsStore() bool  { return true }
func (c *RecommendCmd) NeedsUser() bool   { return true }

func (c *RecommendCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RecommendCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Style defaults to same-category affinity
	style := service.StyleType
	if len(args) > 0 {
		style = service.Style(args[0])
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	task, err := svc.Recommend(ctx, cfg.User, style)
	if err != nil {
		if errors.Is(err, store.ErrInvalidStyle) {
			fmt.Fprintf(errOut, "error: unknown style: %s (want type or dispersed)\n", style)
			return exitcode.UserError
		}
		// An empty pool is an outcome, not a failure
		if errors.Is(err, store.ErrNoCandidates) {
			fmt.Fprintln(out, "nothing to recommend")
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	output.FormatRecommended(out, task)
	return exitcode.Success
}
