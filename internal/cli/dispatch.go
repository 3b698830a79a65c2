// Package cli handles command-line parsing and dispatch.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasker/internal/commands"
	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// Common flags may precede the command name (tasker --user alice add ...)
	common := flag.NewFlagSet("tasker", flag.ContinueOnError)
	common.SetOutput(io.Discard)

	var user, configDir string
	var quiet, debug bool
	registerCommonFlags(common, &user, &configDir, &quiet, &debug)

	if err := common.Parse(args); err != nil {
		return flagError(errOut, err)
	}

	rest := common.Args()
	if len(rest) == 0 {
		// No command -> print usage
		return d.dispatchCommand(ctx, mustFind(d.registry, "help"), nil, user, configDir, quiet, debug, out, errOut)
	}

	cmdName := rest[0]
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, rest[1:], user, configDir, quiet, debug, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, user, configDir string, quiet, debug bool, out, errOut io.Writer) int {
	// Per-command flag set; common flags are accepted here too so they may
	// appear after the command name
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	registerCommonFlags(fs, &user, &configDir, &quiet, &debug)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return flagError(errOut, err)
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.User = strings.TrimSpace(user)
	cfg.Quiet = quiet
	cfg.Debug = debug

	if cfg.Debug {
		fmt.Fprintf(errOut, "debug: command=%s config=%s user=%q\n", cmd.Name(), cfg.Dir, cfg.User)
	}

	if cmd.NeedsUser() && cfg.User == "" {
		fmt.Fprintln(errOut, "error: user required (use --user <name> or the interactive command)")
		return exitcode.UserError
	}

	var svc service.Service
	if cmd.NeedsStore() {
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, cfg, svc, positional, out, errOut)
}

func registerCommonFlags(fs *flag.FlagSet, user, configDir *string, quiet, debug *bool) {
	fs.StringVar(user, "user", *user, "")
	fs.StringVar(user, "u", *user, "")
	fs.StringVar(configDir, "config", *configDir, "")
	fs.BoolVar(quiet, "quiet", *quiet, "")
	fs.BoolVar(debug, "debug", *debug, "")
}

// flagError converts flag-package errors into the CLI's error messages.
func flagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	if strings.Contains(errStr, "flag needs an argument") {
		flagPart := strings.TrimSpace(strings.SplitN(errStr, ":", 2)[0])
		flagPart = strings.TrimPrefix(flagPart, "flag ")
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
		return exitcode.UserError
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}

func mustFind(r *commands.Registry, name string) commands.Command {
	cmd, ok := r.Find(name)
	if !ok {
		panic("command not registered: " + name)
	}
	return cmd
}
