package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	category string
	priority bool
}

// SetCategory sets the category (for testing).
func (c *AddCmd) SetCategory(category string) {
	c.category = category
}

// SetPriority sets the priority flag (for testing).
func (c *AddCmd) SetPriority(priority bool) {
	c.priority = priority
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string {
	return "tasker --user <name> add [--category <cat>] [--priority] <text...>"
}
func (c *AddCmd) NeedsStore() bool { return true }
func (c *AddCmd) NeedsUser() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.BoolVar(&c.priority, "priority", false, "")
	fs.BoolVar(&c.priority, "p", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Join args to form the task text
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}

	if _, err := svc.Add(ctx, cfg.User, text, c.category, c.priority); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
