// Package shell parses interactive-mode input lines into typed commands.
package shell

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd        Type = "add"
	TypeList       Type = "list"
	TypeRemove     Type = "remove"
	TypeDone       Type = "done"
	TypeClear      Type = "clear"
	TypeSelect     Type = "select"
	TypeUnselect   Type = "unselect"
	TypeCurrent    Type = "current"
	TypePromote    Type = "promote"
	TypeDemote     Type = "demote"
	TypePriorities Type = "priorities"
	TypeRecommend  Type = "recommend"
	TypeGenerate   Type = "generate"
	TypeHelp       Type = "help"
	TypeQuit       Type = "quit"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Command is a parsed shell line. Index is set for index-taking verbs, Text
// carries the free text of add/generate, Category the list filter, Style the
// recommend style, and UseAI the generate mode.
type Command struct {
	Type     Type
	Raw      string
	Index    int
	Text     string
	Category string
	Style    string
	UseAI    bool
}

// Parse turns one input line into a Command.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)

	switch head {
	case "add", "a":
		if rest == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
		}
		return Command{Type: TypeAdd, Raw: raw, Text: rest}, nil
	case "list", "ls", "l":
		return Command{Type: TypeList, Raw: raw, Category: rest}, nil
	case "remove", "rm":
		return parseIndexed(TypeRemove, raw, rest)
	case "done", "d":
		return parseIndexed(TypeDone, raw, rest)
	case "clear":
		return Command{Type: TypeClear, Raw: raw}, nil
	case "select":
		return parseIndexed(TypeSelect, raw, rest)
	case "unselect":
		return Command{Type: TypeUnselect, Raw: raw}, nil
	case "current", "cur":
		return Command{Type: TypeCurrent, Raw: raw}, nil
	case "promote":
		return parseIndexed(TypePromote, raw, rest)
	case "demote":
		return parseIndexed(TypeDemote, raw, rest)
	case "priorities", "prio":
		return Command{Type: TypePriorities, Raw: raw}, nil
	case "recommend", "rec":
		return Command{Type: TypeRecommend, Raw: raw, Style: rest}, nil
	case "generate", "gen":
		return parseGenerate(raw, rest)
	case "help", "h":
		return Command{Type: TypeHelp, Raw: raw}, nil
	case "quit", "q", "exit":
		return Command{Type: TypeQuit, Raw: raw}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseIndexed(t Type, raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task index", t)}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task index: %s", rest)}
	}
	return Command{Type: t, Raw: raw, Index: n}, nil
}

func parseGenerate(raw, rest string) (Command, error) {
	useAI := false
	if strings.HasPrefix(rest, "--ai") {
		useAI = true
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "--ai"))
	}
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "generate requires a prompt"}
	}
	return Command{Type: TypeGenerate, Raw: raw, Text: rest, UseAI: useAI}, nil
}
