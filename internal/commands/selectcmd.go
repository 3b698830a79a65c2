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
	Register(&SelectCmd{})
	Register(&UnselectCmd{})
	Register(&CurrentCmd{})
}

// SelectCmd implements the select command.
type SelectCmd struct{}

func (c *SelectCmd) Name() string      { return "select" }
func (c *SelectCmd) Aliases() []string { return nil }
func (c *SelectCmd) Synopsis() string  { return "Select a task as the current one" }
func (c *SelectCmd) Usage() string     { return "tasker --user <name> select <n>" }
func (c *SelectCmd) NeedsStore() bool  { return true }
func (c *SelectCmd) NeedsUser() bool   { return true }

func (c *SelectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SelectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	index, err := parseIndex(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := svc.Select(ctx, cfg.User, index)
	if err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			fmt.Fprintf(errOut, "error: index out of range: %d\n", index)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "selected: %s\n", task.Text)
	}
	return exitcode.Success
}

// UnselectCmd implements the unselect command.
type UnselectCmd struct{}

func (c *UnselectCmd) Name() string      { return "unselect" }
func (c *UnselectCmd) Aliases() []string { return nil }
func (c *UnselectCmd) Synopsis() string  { return "Clear the current task" }
func (c *UnselectCmd) Usage() string     { return "tasker --user <name> unselect" }
func (c *UnselectCmd) NeedsStore() bool  { return true }
func (c *UnselectCmd) NeedsUser() bool   { return true }

func (c *UnselectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UnselectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := svc.Unselect(ctx, cfg.User); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "cleared current task")
	}
	return exitcode.Success
}

// CurrentCmd implements the current command.
type CurrentCmd struct{}

func (c *CurrentCmd) Name() string      { return "current" }
func (c *CurrentCmd) Aliases() []string { return nil }
func (c *CurrentCmd) Synopsis() string  { return "Show the current task" }
func (c *CurrentCmd) Usage() string     { return "tasker --user <name> current" }
func (c *CurrentCmd) NeedsStore() bool  { return true }
func (c *CurrentCmd) NeedsUser() bool   { return true }

func (c *CurrentCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CurrentCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, ok, err := svc.Current(ctx, cfg.User)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	// A stale or unset reference is reported, not failed
	if !ok {
		fmt.Fprintln(out, "no current task")
		return exitcode.Success
	}

	output.FormatCurrent(out, task)
	return exitcode.Success
}
