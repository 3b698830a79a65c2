package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/output"
	"tasker/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	category string
}

// SetCategory sets the category filter (for testing).
func (c *ListCmd) SetCategory(category string) {
	c.category = category
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tasker --user <name> list [--category <cat>]" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) NeedsUser() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	entries, err := svc.List(ctx, cfg.User, c.category)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if len(entries) == 0 {
		if !cfg.Quiet {
			fmt.Fprintf(out, "no tasks for user '%s'\n", cfg.User)
		}
		return exitcode.Success
	}

	for _, e := range entries {
		output.FormatTask(out, e.Num, e.Task)
	}
	return exitcode.Success
}
