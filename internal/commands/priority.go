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
	Register(&PromoteCmd{})
	Register(&DemoteCmd{})
	Register(&PrioritiesCmd{})
}

// PromoteCmd implements the promote command.
type PromoteCmd struct{}

func (c *PromoteCmd) Name() string      { return "promote" }
func (c *PromoteCmd) Aliases() []string { return nil }
func (c *PromoteCmd) Synopsis() string  { return "Flag a task as priority" }
func (c *PromoteCmd) Usage() string     { return "tasker --user <name> promote <n>" }
func (c *PromoteCmd) NeedsStore() bool  { return true }
func (c *PromoteCmd) NeedsUser() bool   { return true }

func (c *PromoteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PromoteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetPriority(ctx, cfg, svc.Promote, "promoted", args, out, errOut)
}

// DemoteCmd implements the demote command.
type DemoteCmd struct{}

func (c *DemoteCmd) Name() string      { return "demote" }
func (c *DemoteCmd) Aliases() []string { return nil }
func (c *DemoteCmd) Synopsis() string  { return "Remove the priority flag from a task" }
func (c *DemoteCmd) Usage() string     { return "tasker --user <name> demote <n>" }
func (c *DemoteCmd) NeedsStore() bool  { return true }
func (c *DemoteCmd) NeedsUser() bool   { return true }

func (c *DemoteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DemoteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetPriority(ctx, cfg, svc.Demote, "demoted", args, out, errOut)
}

// runSetPriority is the shared implementation for promote and demote.
func runSetPriority(ctx context.Context, cfg *config.Config, op func(context.Context, string, int) (service.Task, error), verb string, args []string, out, errOut io.Writer) int {
	index, err := parseIndex(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := op(ctx, cfg.User, index)
	if err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			fmt.Fprintf(errOut, "error: index out of range: %d\n", index)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "%s: %s\n", verb, task.Text)
	}
	return exitcode.Success
}

// PrioritiesCmd implements the priorities command.
type PrioritiesCmd struct{}

func (c *PrioritiesCmd) Name() string      { return "priorities" }
func (c *PrioritiesCmd) Aliases() []string { return nil }
func (c *PrioritiesCmd) Synopsis() string  { return "List priority tasks" }
func (c *PrioritiesCmd) Usage() string     { return "tasker --user <name> priorities" }
func (c *PrioritiesCmd) NeedsStore() bool  { return true }
func (c *PrioritiesCmd) NeedsUser() bool   { return true }

func (c *PrioritiesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PrioritiesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	entries, err := svc.ListPriorities(ctx, cfg.User)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if len(entries) == 0 {
		if !cfg.Quiet {
			fmt.Fprintf(out, "no priority tasks for user '%s'\n", cfg.User)
		}
		return exitcode.Success
	}

	for _, e := range entries {
		output.FormatTask(out, e.Num, e.Task)
	}
	return exitcode.Success
}
