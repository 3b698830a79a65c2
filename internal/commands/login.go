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
	Register(&LoginCmd{})
	Register(&LogoutCmd{})
}

// LoginCmd implements the login command: it stores the generation API key
// under the config directory. The environment variable always wins over the
// stored key.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Store the generation API key" }
func (c *LoginCmd) Usage() string     { return "tasker login <api-key>" }
func (c *LoginCmd) NeedsStore() bool  { return false }
func (c *LoginCmd) NeedsUser() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: api key required")
		return exitcode.UserError
	}

	if err := cfg.SaveKey(strings.TrimSpace(args[0])); err != nil {
		fmt.Fprintf(errOut, "error: save key: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// LogoutCmd implements the logout command: it removes the stored key.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove the stored generation API key" }
func (c *LogoutCmd) Usage() string     { return "tasker logout" }
func (c *LogoutCmd) NeedsStore() bool  { return false }
func (c *LogoutCmd) NeedsUser() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := cfg.RemoveKey(); err != nil {
		// Not being logged in is not an error worth failing on
		if !cfg.Quiet {
			fmt.Fprintln(out, "no stored key")
		}
		return exitcode.Success
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
