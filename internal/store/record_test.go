package store

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// addTask is a helper that adds a task with a unique timestamp.
func addTask(t *testing.T, rec *Record, text, category string, priority bool) Task {
	t.Helper()
	task, err := rec.Add(text, category, priority, testTime.Add(time.Duration(len(rec.Tasks))*time.Second))
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", text, err)
	}
	return task
}

func TestEnsureCreatesRecord(t *testing.T) {
	s := Store{}
	rec := s.Ensure("alice")

	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.Tasks == nil || len(rec.Tasks) != 0 {
		t.Errorf("expected empty task list, got %v", rec.Tasks)
	}
	if rec.Current != "" {
		t.Errorf("expected empty current, got %q", rec.Current)
	}
	if s["alice"] != rec {
		t.Error("expected record to be stored under the username")
	}

	// Ensure is idempotent
	if again := s.Ensure("alice"); again != rec {
		t.Error("expected the same record on second Ensure")
	}
}

func TestAddValidatesText(t *testing.T) {
	rec := &Record{}

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := rec.Add(text, "", false, testTime); !errors.Is(err, ErrEmptyText) {
			t.Errorf("Add(%q): expected ErrEmptyText, got %v", text, err)
		}
	}
	if len(rec.Tasks) != 0 {
		t.Errorf("failed Add must not mutate the record, got %d tasks", len(rec.Tasks))
	}
}

func TestAddStampsUTC(t *testing.T) {
	rec := &Record{}
	local := time.Date(2024, 5, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*3600))

	task, err := rec.Add("buy milk", "home", true, local)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	parsed, err := time.Parse(TimeLayout, task.CreatedAt)
	if err != nil {
		t.Fatalf("created_at %q not in layout %q: %v", task.CreatedAt, TimeLayout, err)
	}
	if parsed.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %v", parsed.Location())
	}
	if !parsed.Equal(local) {
		t.Errorf("expected instant %v, got %v", local, parsed)
	}
	if task.Done {
		t.Error("new task must not be done")
	}
	if task.Category != "home" || !task.Priority {
		t.Errorf("unexpected task fields: %+v", task)
	}
}

func TestRemove(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "one", "", false)
	second := addTask(t, rec, "two", "", false)
	addTask(t, rec, "three", "", false)

	removed, err := rec.Remove(2)
	if err != nil {
		t.Fatalf("Remove(2) failed: %v", err)
	}
	if removed.CreatedAt != second.CreatedAt {
		t.Errorf("expected to remove %q, got %q", second.Text, removed.Text)
	}
	if len(rec.Tasks) != 2 {
		t.Fatalf("expected 2 tasks left, got %d", len(rec.Tasks))
	}
	// Later tasks shift down
	if rec.Tasks[0].Text != "one" || rec.Tasks[1].Text != "three" {
		t.Errorf("unexpected order after removal: %v", rec.Tasks)
	}
}

func TestIndexBounds(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "only", "", false)
	rec.Current = rec.Tasks[0].CreatedAt

	before := *rec
	beforeTasks := append([]Task(nil), rec.Tasks...)

	ops := map[string]func(int) error{
		"Remove":   func(i int) error { _, err := rec.Remove(i); return err },
		"MarkDone": func(i int) error { _, err := rec.MarkDone(i); return err },
		"Promote":  func(i int) error { _, err := rec.Promote(i); return err },
		"Demote":   func(i int) error { _, err := rec.Demote(i); return err },
		"Select":   func(i int) error { _, err := rec.Select(i); return err },
	}

	for name, op := range ops {
		for _, i := range []int{0, -1, 2, 100} {
			if err := op(i); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("%s(%d): expected ErrIndexOutOfRange, got %v", name, i, err)
			}
		}
	}

	if rec.Current != before.Current || !reflect.DeepEqual(rec.Tasks, beforeTasks) {
		t.Error("out-of-range operation mutated the record")
	}
}

func TestRemoveClearsCurrent(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "first", "", false)
	addTask(t, rec, "second", "", false)

	if _, err := rec.Select(1); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if _, err := rec.Remove(1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if rec.Current != "" {
		t.Errorf("expected current cleared after removing the selected task, got %q", rec.Current)
	}
}

func TestRemoveOtherKeepsCurrent(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "first", "", false)
	addTask(t, rec, "second", "", false)

	selected, err := rec.Select(1)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if _, err := rec.Remove(2); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if rec.Current != selected.CreatedAt {
		t.Errorf("expected current %q untouched, got %q", selected.CreatedAt, rec.Current)
	}
}

func TestMarkDoneIdempotent(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "t", "", false)

	if _, err := rec.MarkDone(1); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	first := append([]Task(nil), rec.Tasks...)

	if _, err := rec.MarkDone(1); err != nil {
		t.Fatalf("second MarkDone failed: %v", err)
	}
	if !reflect.DeepEqual(rec.Tasks, first) {
		t.Error("MarkDone is not idempotent")
	}
	if !rec.Tasks[0].Done {
		t.Error("task not marked done")
	}
}

func TestPromoteDemoteIdempotent(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "t", "", false)

	for range 2 {
		if _, err := rec.Promote(1); err != nil {
			t.Fatalf("Promote failed: %v", err)
		}
		if !rec.Tasks[0].Priority {
			t.Error("expected priority set")
		}
	}
	for range 2 {
		if _, err := rec.Demote(1); err != nil {
			t.Fatalf("Demote failed: %v", err)
		}
		if rec.Tasks[0].Priority {
			t.Error("expected priority cleared")
		}
	}
}

func TestClear(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "a", "", false)
	addTask(t, rec, "b", "", true)
	rec.Select(1)

	rec.Clear()

	if len(rec.Tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(rec.Tasks))
	}
	if rec.Current != "" {
		t.Errorf("expected empty current, got %q", rec.Current)
	}

	// Clearing an already empty record is fine
	rec.Clear()
	if len(rec.Tasks) != 0 || rec.Current != "" {
		t.Error("second Clear changed state")
	}
}

func TestSelectCurrentRoundTrip(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "first", "", false)
	target := addTask(t, rec, "second", "", false)

	if _, err := rec.Select(2); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	// Adding more tasks does not disturb the selection
	addTask(t, rec, "third", "", false)

	cur, ok := rec.CurrentTask()
	if !ok {
		t.Fatal("expected a current task")
	}
	if cur.CreatedAt != target.CreatedAt || cur.Text != "second" {
		t.Errorf("expected current %q, got %q", target.Text, cur.Text)
	}
}

func TestCurrentTaskStaleReference(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "t", "", false)

	// A reference to a removed task resolves to nothing but is not repaired
	rec.Current = "2001-01-01T00:00:00Z"
	if _, ok := rec.CurrentTask(); ok {
		t.Error("expected stale reference to resolve to no current task")
	}
	if rec.Current != "2001-01-01T00:00:00Z" {
		t.Error("CurrentTask must not repair the stale reference")
	}
}

func TestUnselect(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "t", "", false)
	rec.Select(1)

	rec.Unselect()
	if rec.Current != "" {
		t.Errorf("expected empty current, got %q", rec.Current)
	}
	if _, ok := rec.CurrentTask(); ok {
		t.Error("expected no current task after Unselect")
	}
}

func TestListKeepsFullListIndices(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "wash dishes", "kitchen", false)
	addTask(t, rec, "file taxes", "paperwork", false)
	addTask(t, rec, "wipe counters", "kitchen", false)

	all := rec.List("")
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	for i, e := range all {
		if e.Index != i+1 {
			t.Errorf("entry %d: expected index %d, got %d", i, i+1, e.Index)
		}
	}

	kitchen := rec.List("kitchen")
	if len(kitchen) != 2 {
		t.Fatalf("expected 2 kitchen entries, got %d", len(kitchen))
	}
	// Indices reflect positions in the full list, not the filtered one
	if kitchen[0].Index != 1 || kitchen[1].Index != 3 {
		t.Errorf("expected indices 1 and 3, got %d and %d", kitchen[0].Index, kitchen[1].Index)
	}

	if got := rec.List("garage"); len(got) != 0 {
		t.Errorf("expected no garage entries, got %d", len(got))
	}
}

func TestListPrioritiesIgnoresDoneState(t *testing.T) {
	rec := &Record{}
	addTask(t, rec, "normal", "", false)
	addTask(t, rec, "urgent", "", true)
	addTask(t, rec, "urgent and done", "", true)
	rec.MarkDone(3)

	entries := rec.ListPriorities()
	if len(entries) != 2 {
		t.Fatalf("expected 2 priority entries, got %d", len(entries))
	}
	if entries[0].Task.Text != "urgent" || entries[1].Task.Text != "urgent and done" {
		t.Errorf("unexpected entries: %v", entries)
	}
	if entries[0].Index != 2 || entries[1].Index != 3 {
		t.Errorf("expected indices 2 and 3, got %d and %d", entries[0].Index, entries[1].Index)
	}
}
