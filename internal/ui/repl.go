// Package ui implements the interactive shell as a bubbletea program.
package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasker/internal/genai"
	"tasker/internal/output"
	"tasker/internal/service"
	"tasker/internal/shell"
	"tasker/internal/store"
)

// mode tracks what the input field is currently asking for.
type mode int

const (
	modeUsername mode = iota
	modeCommand
	modeCategory
)

const shellHelp = `commands: add <text>, list [category], remove <n>, done <n>, clear,
select <n>, unselect, current, promote <n>, demote <n>, priorities,
recommend [type|dispersed], generate [--ai] <prompt>, help, quit`

// historyLimit caps the scrollback kept in memory.
const historyLimit = 500

// Repl is the interactive shell model.
type Repl struct {
	ctx  context.Context
	svc  service.Service
	user string

	mode    mode
	input   textinput.Model
	history []string

	// pendingAdd holds the task text while the category prompt is shown.
	pendingAdd string

	quitting bool
}

// New creates the shell model. When user is empty the shell starts by
// prompting for a username.
func New(ctx context.Context, svc service.Service, user string) *Repl {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 512

	r := &Repl{
		ctx:   ctx,
		svc:   svc,
		user:  user,
		input: ti,
	}
	if user == "" {
		r.mode = modeUsername
		r.input.Prompt = promptStyle.Render("Username: ")
	} else {
		r.enterCommandMode()
	}
	return r
}

func (r *Repl) Init() tea.Cmd {
	return textinput.Blink
}

func (r *Repl) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			r.quitting = true
			return r, tea.Quit
		case tea.KeyEnter:
			line := r.input.Value()
			r.input.SetValue("")
			return r.submit(line)
		}
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r *Repl) View() string {
	if r.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("tasker"))
	if r.user != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  interactive mode for user '%s', 'help' for commands", r.user)))
	}
	b.WriteString("\n\n")

	start := 0
	if len(r.history) > historyLimit {
		start = len(r.history) - historyLimit
	}
	for _, line := range r.history[start:] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(r.input.View())
	b.WriteString("\n")
	return b.String()
}

// submit handles one entered line according to the current mode.
func (r *Repl) submit(line string) (tea.Model, tea.Cmd) {
	switch r.mode {
	case modeUsername:
		name := strings.TrimSpace(line)
		if name == "" {
			r.echo(errorStyle.Render("username required"))
			return r, nil
		}
		r.user = name
		r.enterCommandMode()
		return r, nil

	case modeCategory:
		text := r.pendingAdd
		r.pendingAdd = ""
		r.enterCommandMode()
		r.runAdd(text, strings.TrimSpace(line))
		return r, nil

	default:
		return r.runCommand(line)
	}
}

func (r *Repl) runCommand(line string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(line) == "" {
		return r, nil
	}
	r.echo(dimStyle.Render(r.user+"> ") + line)

	cmd, err := shell.Parse(line)
	if err != nil {
		var cmdErr *shell.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == shell.ErrCodeUnknownCommand {
			r.echo(errorStyle.Render("unknown command, type 'help'"))
		} else {
			r.echo(errorStyle.Render(err.Error()))
		}
		return r, nil
	}

	switch cmd.Type {
	case shell.TypeQuit:
		r.quitting = true
		return r, tea.Quit
	case shell.TypeHelp:
		r.echo(shellHelp)
	case shell.TypeAdd:
		// Mirror the CLI's optional category with a follow-up prompt
		r.pendingAdd = cmd.Text
		r.mode = modeCategory
		r.input.Prompt = promptStyle.Render("Category (optional): ")
	case shell.TypeList:
		r.runList(cmd.Category)
	case shell.TypeRemove:
		r.runIndexed(cmd.Index, "removed", r.svc.Remove)
	case shell.TypeDone:
		r.runIndexed(cmd.Index, "done", r.svc.MarkDone)
	case shell.TypeClear:
		if err := r.svc.Clear(r.ctx, r.user); err != nil {
			r.fail(err)
		} else {
			r.echo(fmt.Sprintf("cleared tasks for '%s'", r.user))
		}
	case shell.TypeSelect:
		r.runIndexed(cmd.Index, "selected", r.svc.Select)
	case shell.TypeUnselect:
		if err := r.svc.Unselect(r.ctx, r.user); err != nil {
			r.fail(err)
		} else {
			r.echo("cleared current task")
		}
	case shell.TypeCurrent:
		r.runCurrent()
	case shell.TypePromote:
		r.runIndexed(cmd.Index, "promoted", r.svc.Promote)
	case shell.TypeDemote:
		r.runIndexed(cmd.Index, "demoted", r.svc.Demote)
	case shell.TypePriorities:
		r.runPriorities()
	case shell.TypeRecommend:
		r.runRecommend(cmd.Style)
	case shell.TypeGenerate:
		r.runGenerate(cmd.Text, cmd.UseAI)
	}
	return r, nil
}

func (r *Repl) enterCommandMode() {
	r.mode = modeCommand
	r.input.Prompt = promptStyle.Render(r.user + "> ")
}

func (r *Repl) echo(line string) {
	r.history = append(r.history, line)
}

func (r *Repl) fail(err error) {
	if errors.Is(err, store.ErrIndexOutOfRange) {
		r.echo(errorStyle.Render("index out of range"))
		return
	}
	if errors.Is(err, store.ErrEmptyText) {
		r.echo(errorStyle.Render("task text required"))
		return
	}
	r.echo(errorStyle.Render("error: " + err.Error()))
}

func (r *Repl) runAdd(text, category string) {
	if _, err := r.svc.Add(r.ctx, r.user, text, category, false); err != nil {
		r.fail(err)
		return
	}
	r.echo("added")
}

func (r *Repl) runIndexed(index int, verb string, op func(context.Context, string, int) (service.Task, error)) {
	task, err := op(r.ctx, r.user, index)
	if err != nil {
		r.fail(err)
		return
	}
	r.echo(fmt.Sprintf("%s: %s", verb, task.Text))
}

func (r *Repl) runList(category string) {
	entries, err := r.svc.List(r.ctx, r.user, category)
	if err != nil {
		r.fail(err)
		return
	}
	if len(entries) == 0 {
		r.echo(fmt.Sprintf("no tasks for user '%s'", r.user))
		return
	}
	var buf bytes.Buffer
	for _, e := range entries {
		output.FormatTask(&buf, e.Num, e.Task)
	}
	r.echo(strings.TrimRight(buf.String(), "\n"))
}

func (r *Repl) runPriorities() {
	entries, err := r.svc.ListPriorities(r.ctx, r.user)
	if err != nil {
		r.fail(err)
		return
	}
	if len(entries) == 0 {
		r.echo(fmt.Sprintf("no priority tasks for user '%s'", r.user))
		return
	}
	var buf bytes.Buffer
	for _, e := range entries {
		output.FormatTask(&buf, e.Num, e.Task)
	}
	r.echo(strings.TrimRight(buf.String(), "\n"))
}

func (r *Repl) runCurrent() {
	task, ok, err := r.svc.Current(r.ctx, r.user)
	if err != nil {
		r.fail(err)
		return
	}
	if !ok {
		r.echo("no current task")
		return
	}
	var buf bytes.Buffer
	output.FormatCurrent(&buf, task)
	r.echo(strings.TrimRight(buf.String(), "\n"))
}

func (r *Repl) runRecommend(styleArg string) {
	style := service.StyleType
	if styleArg != "" {
		style = service.Style(styleArg)
	}
	task, err := r.svc.Recommend(r.ctx, r.user, style)
	if err != nil {
		if errors.Is(err, store.ErrNoCandidates) {
			r.echo("nothing to recommend")
			return
		}
		if errors.Is(err, store.ErrInvalidStyle) {
			r.echo(errorStyle.Render("unknown style, want type or dispersed"))
			return
		}
		r.fail(err)
		return
	}
	var buf bytes.Buffer
	output.FormatRecommended(&buf, task)
	r.echo(strings.TrimRight(buf.String(), "\n"))
}

func (r *Repl) runGenerate(prompt string, useAI bool) {
	tasks, err := r.svc.Generate(r.ctx, r.user, prompt, useAI)
	if err != nil {
		if errors.Is(err, genai.ErrNoAPIKey) {
			r.echo(errorStyle.Render("no API key configured"))
			return
		}
		r.fail(err)
		return
	}
	r.echo(fmt.Sprintf("generated and added %d tasks", len(tasks)))
}
