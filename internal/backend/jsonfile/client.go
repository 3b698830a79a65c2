// Package jsonfile implements the task service on top of a single JSON file.
//
// Every mutating operation is a full load-mutate-save cycle: the file is read
// and decoded, the user's record is changed in memory, and the whole store is
// written back pretty-printed. Reads fail soft (a missing or unparsable file
// is an empty store) so the tool works on first run; write failures are
// surfaced. There is no locking: the tool assumes a single invocation at a
// time, and concurrent external writers get last-writer-wins.
package jsonfile

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tasker/internal/config"
	"tasker/internal/genai"
	"tasker/internal/service"
	"tasker/internal/store"
)

// Client implements service.Service backed by a JSON file.
type Client struct {
	path string

	// Now stamps new tasks. Replaceable in tests.
	Now func() time.Time

	// Rand drives recommendation choice. Replaceable in tests.
	Rand *rand.Rand

	// Generator backs AI task generation. Nil means no key is configured.
	Generator genai.Generator
}

// New creates a client for the store file under the config directory.
// gen may be nil when no generation credential is available.
func New(cfg *config.Config, gen genai.Generator) (*Client, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("jsonfile: create config dir: %w", err)
	}
	return &Client{
		path:      cfg.DBPath(),
		Now:       time.Now,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		Generator: gen,
	}, nil
}

// load reads and decodes the store. Absent or unparsable files yield an
// empty store so the caller always has valid state to operate on.
func (c *Client) load() store.Store {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return store.Store{}
	}
	s, err := store.Decode(data)
	if err != nil {
		return store.Store{}
	}
	return s
}

// save encodes and rewrites the whole store file.
func (c *Client) save(s store.Store) error {
	data, err := store.Encode(s)
	if err != nil {
		return fmt.Errorf("jsonfile: encode store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("jsonfile: write store: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("jsonfile: write store: %w", err)
	}
	return nil
}

// mutate runs fn against the user's record and persists the store when fn
// succeeds. Validation happens inside fn before any in-memory change, so a
// failed operation never persists partial state.
func (c *Client) mutate(user string, fn func(rec *store.Record) error) error {
	s := c.load()
	rec := s.Ensure(user)
	if err := fn(rec); err != nil {
		return err
	}
	return c.save(s)
}

// Add implements service.Service.
func (c *Client) Add(ctx context.Context, user, text, category string, priority bool) (service.Task, error) {
	var created store.Task
	err := c.mutate(user, func(rec *store.Record) error {
		var err error
		created, err = rec.Add(text, category, priority, c.Now())
		return err
	})
	if err != nil {
		return service.Task{}, err
	}
	return toServiceTask(created), nil
}

// Remove implements service.Service.
func (c *Client) Remove(ctx context.Context, user string, index int) (service.Task, error) {
	var removed store.Task
	err := c.mutate(user, func(rec *store.Record) error {
		var err error
		removed, err = rec.Remove(index)
		return err
	})
	if err != nil {
		return service.Task{}, err
	}
	return toServiceTask(removed), nil
}

// Clear implements service.Service.
func (c *Client) Clear(ctx context.Context, user string) error {
	return c.mutate(user, func(rec *store.Record) error {
		rec.Clear()
		return nil
	})
}

// MarkDone implements service.Service.
func (c *Client) MarkDone(ctx context.Context, user string, index int) (service.Task, error) {
	return c.mutateTask(user, func(rec *store.Record) (store.Task, error) {
		return rec.MarkDone(index)
	})
}

// Promote implements service.Service.
func (c *Client) Promote(ctx context.Context, user string, index int) (service.Task, error) {
	return c.mutateTask(user, func(rec *store.Record) (store.Task, error) {
		return rec.Promote(index)
	})
}

// Demote implements service.Service.
func (c *Client) Demote(ctx context.Context, user string, index int) (service.Task, error) {
	return c.mutateTask(user, func(rec *store.Record) (store.Task, error) {
		return rec.Demote(index)
	})
}

// Select implements service.Service.
func (c *Client) Select(ctx context.Context, user string, index int) (service.Task, error) {
	return c.mutateTask(user, func(rec *store.Record) (store.Task, error) {
		return rec.Select(index)
	})
}

// Unselect implements service.Service.
func (c *Client) Unselect(ctx context.Context, user string) error {
	return c.mutate(user, func(rec *store.Record) error {
		rec.Unselect()
		return nil
	})
}

// Current implements service.Service. Pure read; nothing is persisted, so a
// stale reference stays in the file until an explicit mutation clears it.
func (c *Client) Current(ctx context.Context, user string) (service.Task, bool, error) {
	s := c.load()
	rec := s.Ensure(user)
	t, ok := rec.CurrentTask()
	if !ok {
		return service.Task{}, false, nil
	}
	return toServiceTask(t), true, nil
}

// List implements service.Service. Pure read.
func (c *Client) List(ctx context.Context, user, category string) ([]service.Entry, error) {
	s := c.load()
	return toServiceEntries(s.Ensure(user).List(category)), nil
}

// ListPriorities implements service.Service. Pure read.
func (c *Client) ListPriorities(ctx context.Context, user string) ([]service.Entry, error) {
	s := c.load()
	return toServiceEntries(s.Ensure(user).ListPriorities()), nil
}

// Recommend implements service.Service. The store is only persisted when a
// recommendation is made; an empty candidate pool leaves the file untouched.
func (c *Client) Recommend(ctx context.Context, user string, style service.Style) (service.Task, error) {
	var chosen store.Task
	err := c.mutate(user, func(rec *store.Record) error {
		var err error
		chosen, err = rec.Recommend(store.Style(style), c.Rand)
		return err
	})
	if err != nil {
		return service.Task{}, err
	}
	return toServiceTask(chosen), nil
}

// Generate implements service.Service. The generator is consulted before any
// in-memory change, so a generation failure adds nothing.
func (c *Client) Generate(ctx context.Context, user, prompt string, useAI bool) ([]service.Task, error) {
	var specs []genai.Task
	if useAI {
		if c.Generator == nil {
			return nil, genai.ErrNoAPIKey
		}
		generated, err := c.Generator.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		specs = generated
	} else {
		for _, text := range store.SplitPrompt(prompt) {
			specs = append(specs, genai.Task{Text: text})
		}
	}

	var added []service.Task
	err := c.mutate(user, func(rec *store.Record) error {
		for _, spec := range specs {
			t, err := rec.Add(spec.Text, spec.Category, spec.Priority, c.Now())
			if err != nil {
				return err
			}
			added = append(added, toServiceTask(t))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// Users implements service.Service.
func (c *Client) Users(ctx context.Context) ([]string, error) {
	users := c.load().Users()
	sort.Strings(users)
	return users, nil
}

func (c *Client) mutateTask(user string, fn func(rec *store.Record) (store.Task, error)) (service.Task, error) {
	var t store.Task
	err := c.mutate(user, func(rec *store.Record) error {
		var err error
		t, err = fn(rec)
		return err
	})
	if err != nil {
		return service.Task{}, err
	}
	return toServiceTask(t), nil
}

func toServiceTask(t store.Task) service.Task {
	return service.Task{
		Text:      t.Text,
		CreatedAt: t.CreatedAt,
		Done:      t.Done,
		Category:  t.Category,
		Priority:  t.Priority,
	}
}

func toServiceEntries(entries []store.Entry) []service.Entry {
	out := make([]service.Entry, len(entries))
	for i, e := range entries {
		out[i] = service.Entry{Num: e.Index, Task: toServiceTask(e.Task)}
	}
	return out
}
