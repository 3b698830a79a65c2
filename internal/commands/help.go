package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasker help" }
func (c *HelpCmd) NeedsStore() bool  { return false }
func (c *HelpCmd) NeedsUser() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasker --user <name> add [--category <cat>] [--priority] <text...>
  tasker --user <name> list [--category <cat>]
  tasker --user <name> rm <n>
  tasker --user <name> done <n>
  tasker --user <name> clear
  tasker --user <name> select <n>
  tasker --user <name> unselect
  tasker --user <name> current
  tasker --user <name> promote <n>
  tasker --user <name> demote <n>
  tasker --user <name> priorities
  tasker --user <name> recommend [type|dispersed]
  tasker --user <name> generate [--ai] <prompt...>
  tasker [--user <name>] interactive
  tasker users
  tasker login <api-key>
  tasker logout
  tasker help
  tasker version

Common flags:
  --user <name>    Username to operate on
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
