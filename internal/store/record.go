package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	// ErrEmptyText is returned when adding a task with no text.
	ErrEmptyText = errors.New("store: task text is empty")

	// ErrIndexOutOfRange is returned when a 1-based task index falls
	// outside the record's current task list.
	ErrIndexOutOfRange = errors.New("store: index out of range")
)

// Task is a single task item.
type Task struct {
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	Done      bool   `json:"done"`
	Category  string `json:"category"`
	Priority  bool   `json:"priority"`
}

// Record is a user's full task state: the ordered task list plus the
// current-task reference. Current holds the created_at of the selected task,
// or "" when nothing is selected. The reference is resolved by lookup at read
// time; a stale reference (task since removed) simply resolves to nothing.
type Record struct {
	Tasks   []Task `json:"tasks"`
	Current string `json:"current"`
}

// UnmarshalJSON accepts both the current shape and the legacy one where a
// username mapped directly to a bare task array. Legacy arrays are wrapped
// into a record with no current task. Normalization is idempotent.
func (r *Record) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tasks []Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return err
		}
		*r = Record{Tasks: tasks}
		return nil
	}

	// Alias strips the custom unmarshaler to avoid recursion.
	type record Record
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*r = Record(rec)
	return nil
}

// Add appends a new task stamped with now (normalized to UTC).
// Returns the created task.
func (r *Record) Add(text, category string, priority bool, now time.Time) (Task, error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, ErrEmptyText
	}
	t := Task{
		Text:      text,
		CreatedAt: now.UTC().Format(TimeLayout),
		Category:  category,
		Priority:  priority,
	}
	r.Tasks = append(r.Tasks, t)
	return t, nil
}

// Remove deletes the task at 1-based index i and returns it. When the removed
// task is the current one, the current reference is cleared. Later tasks shift
// down by one position.
func (r *Record) Remove(i int) (Task, error) {
	if err := r.checkIndex(i); err != nil {
		return Task{}, err
	}
	t := r.Tasks[i-1]
	r.Tasks = append(r.Tasks[:i-1], r.Tasks[i:]...)
	if r.Current != "" && r.Current == t.CreatedAt {
		r.Current = ""
	}
	return t, nil
}

// Clear empties the task list and clears the current reference.
func (r *Record) Clear() {
	r.Tasks = []Task{}
	r.Current = ""
}

// MarkDone marks the task at 1-based index i as done. Idempotent.
func (r *Record) MarkDone(i int) (Task, error) {
	if err := r.checkIndex(i); err != nil {
		return Task{}, err
	}
	r.Tasks[i-1].Done = true
	return r.Tasks[i-1], nil
}

// Promote flags the task at 1-based index i as a priority task. Idempotent.
func (r *Record) Promote(i int) (Task, error) {
	return r.setPriority(i, true)
}

// Demote removes the priority flag from the task at 1-based index i. Idempotent.
func (r *Record) Demote(i int) (Task, error) {
	return r.setPriority(i, false)
}

func (r *Record) setPriority(i int, priority bool) (Task, error) {
	if err := r.checkIndex(i); err != nil {
		return Task{}, err
	}
	r.Tasks[i-1].Priority = priority
	return r.Tasks[i-1], nil
}

// Select sets the current reference to the task at 1-based index i.
func (r *Record) Select(i int) (Task, error) {
	if err := r.checkIndex(i); err != nil {
		return Task{}, err
	}
	r.Current = r.Tasks[i-1].CreatedAt
	return r.Tasks[i-1], nil
}

// Unselect clears the current reference unconditionally.
func (r *Record) Unselect() {
	r.Current = ""
}

// CurrentTask resolves the current reference against the live task list.
// Returns false when no task is selected or the reference is stale.
func (r *Record) CurrentTask() (Task, bool) {
	if r.Current == "" {
		return Task{}, false
	}
	for _, t := range r.Tasks {
		if t.CreatedAt == r.Current {
			return t, true
		}
	}
	return Task{}, false
}

// Entry pairs a task with its 1-based display index. The index is positional
// and not stable across removals.
type Entry struct {
	Index int
	Task  Task
}

// List returns (index, task) pairs in task order. A non-empty category
// restricts the result to exact category matches; indices always reflect the
// position in the full list. Pure read.
func (r *Record) List(category string) []Entry {
	entries := []Entry{}
	for i, t := range r.Tasks {
		if category != "" && t.Category != category {
			continue
		}
		entries = append(entries, Entry{Index: i + 1, Task: t})
	}
	return entries
}

// ListPriorities returns (index, task) pairs for priority tasks, done or not.
// Pure read.
func (r *Record) ListPriorities() []Entry {
	entries := []Entry{}
	for i, t := range r.Tasks {
		if t.Priority {
			entries = append(entries, Entry{Index: i + 1, Task: t})
		}
	}
	return entries
}

func (r *Record) checkIndex(i int) error {
	if i < 1 || i > len(r.Tasks) {
		return ErrIndexOutOfRange
	}
	return nil
}
