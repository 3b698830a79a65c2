package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
	"tasker/internal/store"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"remove"} }
func (c *RmCmd) Synopsis() string  { return "Remove a task by index" }
func (c *RmCmd) Usage() string     { return "tasker --user <name> rm <n>" }
func (c *RmCmd) NeedsStore() bool  { return true }
func (c *RmCmd) NeedsUser() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	index, err := parseIndex(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := svc.Remove(ctx, cfg.User, index)
	if err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			fmt.Fprintf(errOut, "error: index out of range: %d\n", index)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "removed: %s\n", task.Text)
	}
	return exitcode.Success
}
