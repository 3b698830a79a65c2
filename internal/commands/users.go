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
	Register(&UsersCmd{})
}

// UsersCmd implements the users command.
type UsersCmd struct{}

func (c *UsersCmd) Name() string      { return "users" }
func (c *UsersCmd) Aliases() []string { return nil }
func (c *UsersCmd) Synopsis() string  { return "List usernames present in the store" }
func (c *UsersCmd) Usage() string     { return "tasker users" }
func (c *UsersCmd) NeedsStore() bool  { return true }
func (c *UsersCmd) NeedsUser() bool   { return false }

func (c *UsersCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UsersCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	users, err := svc.Users(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if len(users) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no users")
		}
		return exitcode.Success
	}

	for _, u := range users {
		fmt.Fprintln(out, u)
	}
	return exitcode.Success
}
