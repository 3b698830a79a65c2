// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task store operations. All access to the
// backing store goes through this interface; commands never touch the JSON
// file directly. Every task index is 1-based against the user's current list.
type Service interface {
	// Add creates a task for user and returns it.
	Add(ctx context.Context, user, text, category string, priority bool) (Task, error)

	// Remove deletes the task at index and returns it. Removing the
	// current task clears the current reference.
	Remove(ctx context.Context, user string, index int) (Task, error)

	// Clear deletes all of the user's tasks and the current reference.
	Clear(ctx context.Context, user string) error

	// MarkDone marks the task at index as done. Idempotent.
	MarkDone(ctx context.Context, user string, index int) (Task, error)

	// Promote flags the task at index as a priority task. Idempotent.
	Promote(ctx context.Context, user string, index int) (Task, error)

	// Demote clears the priority flag on the task at index. Idempotent.
	Demote(ctx context.Context, user string, index int) (Task, error)

	// List returns the user's tasks in order. A non-empty category
	// restricts the result to exact matches; numbering always reflects
	// positions in the full list.
	List(ctx context.Context, user, category string) ([]Entry, error)

	// ListPriorities returns the user's priority tasks, done or not.
	ListPriorities(ctx context.Context, user string) ([]Entry, error)

	// Select makes the task at index the current task.
	Select(ctx context.Context, user string, index int) (Task, error)

	// Unselect clears the current task unconditionally.
	Unselect(ctx context.Context, user string) error

	// Current resolves the current task. ok is false when no task is
	// selected or the selected task has since been removed.
	Current(ctx context.Context, user string) (task Task, ok bool, err error)

	// Recommend picks a not-done task per style and selects it.
	Recommend(ctx context.Context, user string, style Style) (Task, error)

	// Generate creates tasks from a free-text prompt. With useAI false a
	// naive splitter is used; with useAI true the external generator is
	// consulted and its failure is surfaced, never silently downgraded.
	Generate(ctx context.Context, user, prompt string, useAI bool) ([]Task, error)

	// Users returns the usernames present in the store, sorted.
	Users(ctx context.Context) ([]string, error)
}
