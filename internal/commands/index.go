package commands

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrIndexRequired is returned when an index-taking command gets no argument.
var ErrIndexRequired = errors.New("task index required")

// parseIndex parses the single positional argument of an index-taking
// command. The value must be a positive integer; range checking against the
// user's task list is the store's job.
func parseIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrIndexRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("expected a single task index, got %d arguments", len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task index: %s", args[0])
	}
	return n, nil
}
