package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
	"tasker/internal/ui"
)

func init() {
	Register(&InteractiveCmd{})
}

// InteractiveCmd implements the interactive command: a shell over the same
// service the one-shot commands use. It prompts for a username itself when
// --user is absent.
type InteractiveCmd struct{}

func (c *InteractiveCmd) Name() string      { return "interactive" }
func (c *InteractiveCmd) Aliases() []string { return []string{"shell"} }
func (c *InteractiveCmd) Synopsis() string  { return "Enter the interactive shell" }
func (c *InteractiveCmd) Usage() string     { return "tasker [--user <name>] interactive" }
func (c *InteractiveCmd) NeedsStore() bool  { return true }
func (c *InteractiveCmd) NeedsUser() bool   { return false }

func (c *InteractiveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *InteractiveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	p := tea.NewProgram(ui.New(ctx, svc, cfg.User), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
