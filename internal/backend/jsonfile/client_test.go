package jsonfile_test

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tasker/internal/backend/jsonfile"
	"tasker/internal/config"
	"tasker/internal/genai"
	"tasker/internal/store"
	"tasker/internal/testutil"
)

// newTestClient creates a client on a temp dir with a stepping clock so every
// task gets a distinct timestamp.
func newTestClient(t *testing.T) (*jsonfile.Client, *config.Config) {
	t.Helper()

	cfg := &config.Config{Dir: t.TempDir()}
	c, err := jsonfile.New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	c.Now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	c.Rand = rand.New(rand.NewSource(1))
	return c, cfg
}

func TestAddPersistsAcrossClients(t *testing.T) {
	ctx := context.Background()
	c, cfg := newTestClient(t)

	if _, err := c.Add(ctx, "alice", "buy milk", "home", true); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// A fresh client reading the same file sees the task
	c2, err := jsonfile.New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	entries, err := c2.List(ctx, "alice", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	task := entries[0].Task
	if task.Text != "buy milk" || task.Category != "home" || !task.Priority || task.Done {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestAddEmptyTextDoesNotTouchFile(t *testing.T) {
	ctx := context.Background()
	c, cfg := newTestClient(t)

	if _, err := c.Add(ctx, "alice", "   ", "", false); !errors.Is(err, store.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if _, err := os.Stat(cfg.DBPath()); !os.IsNotExist(err) {
		t.Error("failed Add must not create the store file")
	}
}

func TestMissingFileIsEmptyStore(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	entries, err := c.List(ctx, "nobody", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestMalformedFileIsEmptyStore(t *testing.T) {
	ctx := context.Background()
	c, cfg := newTestClient(t)

	if err := os.WriteFile(cfg.DBPath(), []byte("not a json"), 0600); err != nil {
		t.Fatal(err)
	}

	entries, err := c.List(ctx, "alice", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}

	// The first mutation rewrites the file with valid content
	if _, err := c.Add(ctx, "alice", "fresh start", "", false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	data, err := os.ReadFile(cfg.DBPath())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Decode(data); err != nil {
		t.Errorf("rewritten file is not valid: %v", err)
	}
}

func TestLegacyFileMigration(t *testing.T) {
	ctx := context.Background()
	c, cfg := newTestClient(t)

	legacy := `{"liz": [{"text": "oldtask", "created_at": "2023-06-01T10:00:00Z", "done": false}]}`
	if err := os.WriteFile(cfg.DBPath(), []byte(legacy), 0600); err != nil {
		t.Fatal(err)
	}

	entries, err := c.List(ctx, "liz", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Task.Text != "oldtask" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	// Operations work on the migrated record and persist the new shape
	if _, err := c.Select(ctx, "liz", 1); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	data, err := os.ReadFile(cfg.DBPath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"current": "2023-06-01T10:00:00Z"`) {
		t.Errorf("expected migrated record with current set, got:\n%s", data)
	}
	if !strings.Contains(string(data), `"tasks"`) {
		t.Errorf("expected wrapped record shape, got:\n%s", data)
	}
}

func TestRemoveClearsCurrentPersisted(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	c.Add(ctx, "eve", "first", "", false)
	c.Add(ctx, "eve", "second", "", false)
	if _, err := c.Select(ctx, "eve", 1); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if _, err := c.Remove(ctx, "eve", 1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, ok, _ := c.Current(ctx, "eve"); ok {
		t.Error("expected no current task after removing the selected one")
	}
}

func TestCurrentStaleReference(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	c.Add(ctx, "hank", "t1", "", false)
	c.Select(ctx, "hank", 1)
	c.Remove(ctx, "hank", 1)

	_, ok, err := c.Current(ctx, "hank")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if ok {
		t.Error("expected stale reference to resolve to no current task")
	}
}

func TestIndexErrorsLeaveStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	c, cfg := newTestClient(t)

	c.Add(ctx, "dan", "one", "", false)
	before, err := os.ReadFile(cfg.DBPath())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Remove(ctx, "dan", 5); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := c.MarkDone(ctx, "dan", 0); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	after, err := os.ReadFile(cfg.DBPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("failed operation rewrote the store file")
	}
}

func TestGenerateFallbackSplitsPrompt(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	tasks, err := c.Generate(ctx, "kate", "Buy milk, Call Bob; Clean", false)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i, want := range []string{"Buy milk", "Call Bob", "Clean"} {
		if tasks[i].Text != want {
			t.Errorf("task %d: expected %q, got %q", i, want, tasks[i].Text)
		}
		if tasks[i].Category != "" || tasks[i].Priority {
			t.Errorf("task %d: expected empty category and no priority, got %+v", i, tasks[i])
		}
	}
}

func TestGenerateAIUsesGenerator(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)
	c.Generator = &testutil.FakeGenerator{
		Tasks: []genai.Task{
			{Text: "Vacuum", Category: "cleaning"},
			{Text: "Laundry", Category: "laundry", Priority: true},
		},
	}

	tasks, err := c.Generate(ctx, "kate", "household chores", true)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[1].Category != "laundry" || !tasks[1].Priority {
		t.Errorf("generator fields not carried over: %+v", tasks[1])
	}
}

func TestGenerateAIFailureAddsNothing(t *testing.T) {
	ctx := context.Background()
	c, cfg := newTestClient(t)
	c.Generator = &testutil.FakeGenerator{Err: errors.New("boom")}

	if _, err := c.Generate(ctx, "kate", "prompt", true); err == nil {
		t.Fatal("expected generation error to surface")
	}
	if _, err := os.Stat(cfg.DBPath()); !os.IsNotExist(err) {
		t.Error("failed generation must not write the store")
	}
}

func TestGenerateAIWithoutGenerator(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	if _, err := c.Generate(ctx, "kate", "prompt", true); !errors.Is(err, genai.ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestRecommendPersistsSelection(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	c.Add(ctx, "ivy", "low", "", false)
	c.Add(ctx, "ivy", "urgent", "", true)
	c.Select(ctx, "ivy", 1)

	chosen, err := c.Recommend(ctx, "ivy", "type")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if chosen.Text != "urgent" {
		t.Errorf("expected the priority task, got %q", chosen.Text)
	}

	cur, ok, err := c.Current(ctx, "ivy")
	if err != nil || !ok {
		t.Fatalf("Current failed: ok=%v err=%v", ok, err)
	}
	if cur.CreatedAt != chosen.CreatedAt {
		t.Error("recommendation was not persisted as current")
	}
}

func TestRecommendNothingLeavesFileAlone(t *testing.T) {
	ctx := context.Background()
	c, cfg := newTestClient(t)

	c.Add(ctx, "ivy", "finished", "", false)
	c.MarkDone(ctx, "ivy", 1)
	before, err := os.ReadFile(cfg.DBPath())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Recommend(ctx, "ivy", "dispersed"); !errors.Is(err, store.ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}

	after, err := os.ReadFile(cfg.DBPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("empty recommendation rewrote the store file")
	}
}

func TestUsersSorted(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	c.Add(ctx, "carol", "t", "", false)
	c.Add(ctx, "alice", "t", "", false)
	c.Add(ctx, "bob", "t", "", false)

	users, err := c.Users(ctx)
	if err != nil {
		t.Fatalf("Users failed: %v", err)
	}
	want := []string{"alice", "bob", "carol"}
	if len(users) != len(want) {
		t.Fatalf("expected %v, got %v", want, users)
	}
	for i := range want {
		if users[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, users)
		}
	}
}

func TestStoreFileLocation(t *testing.T) {
	_, cfg := newTestClient(t)
	if filepath.Base(cfg.DBPath()) != config.DBFile {
		t.Errorf("unexpected store filename: %s", cfg.DBPath())
	}
}
