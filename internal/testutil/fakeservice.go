// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tasker/internal/genai"
	"tasker/internal/service"
	"tasker/internal/store"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Recommendation is deterministic: after the priority override and style
// filter it picks the first task of the pool instead of a random one.
type FakeService struct {
	mu      sync.RWMutex
	tasks   map[string][]service.Task
	current map[string]string
	seq     int

	// Generator backs Generate with useAI true.
	Generator genai.Generator

	// Error injection for testing
	AddErr       error
	RemoveErr    error
	ClearErr     error
	MarkDoneErr  error
	PromoteErr   error
	DemoteErr    error
	ListErr      error
	SelectErr    error
	UnselectErr  error
	CurrentErr   error
	RecommendErr error
	GenerateErr  error
	UsersErr     error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks:   make(map[string][]service.Task),
		current: make(map[string]string),
	}
}

// SeedTask adds a task directly, bypassing validation. Timestamps are
// generated from a counter so they are unique and stable.
func (f *FakeService) SeedTask(user string, t service.Task) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.CreatedAt == "" {
		t.CreatedAt = f.nextStamp()
	}
	f.tasks[user] = append(f.tasks[user], t)
	return t
}

// SetCurrent sets the current reference directly.
func (f *FakeService) SetCurrent(user, createdAt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current[user] = createdAt
}

// CurrentRef returns the raw current reference for assertions.
func (f *FakeService) CurrentRef(user string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current[user]
}

func (f *FakeService) nextStamp() string {
	f.seq++
	return fmt.Sprintf("2024-01-01T00:00:%02dZ", f.seq)
}

// Add implements service.Service.
func (f *FakeService) Add(ctx context.Context, user, text, category string, priority bool) (service.Task, error) {
	if f.AddErr != nil {
		return service.Task{}, f.AddErr
	}
	if text == "" {
		return service.Task{}, store.ErrEmptyText
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{Text: text, CreatedAt: f.nextStamp(), Category: category, Priority: priority}
	f.tasks[user] = append(f.tasks[user], t)
	return t, nil
}

// Remove implements service.Service.
func (f *FakeService) Remove(ctx context.Context, user string, index int) (service.Task, error) {
	if f.RemoveErr != nil {
		return service.Task{}, f.RemoveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := f.tasks[user]
	if index < 1 || index > len(tasks) {
		return service.Task{}, store.ErrIndexOutOfRange
	}
	t := tasks[index-1]
	f.tasks[user] = append(tasks[:index-1], tasks[index:]...)
	if f.current[user] == t.CreatedAt {
		f.current[user] = ""
	}
	return t, nil
}

// Clear implements service.Service.
func (f *FakeService) Clear(ctx context.Context, user string) error {
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[user] = nil
	f.current[user] = ""
	return nil
}

// MarkDone implements service.Service.
func (f *FakeService) MarkDone(ctx context.Context, user string, index int) (service.Task, error) {
	if f.MarkDoneErr != nil {
		return service.Task{}, f.MarkDoneErr
	}
	return f.updateTask(user, index, func(t *service.Task) { t.Done = true })
}

// Promote implements service.Service.
func (f *FakeService) Promote(ctx context.Context, user string, index int) (service.Task, error) {
	if f.PromoteErr != nil {
		return service.Task{}, f.PromoteErr
	}
	return f.updateTask(user, index, func(t *service.Task) { t.Priority = true })
}

// Demote implements service.Service.
func (f *FakeService) Demote(ctx context.Context, user string, index int) (service.Task, error) {
	if f.DemoteErr != nil {
		return service.Task{}, f.DemoteErr
	}
	return f.updateTask(user, index, func(t *service.Task) { t.Priority = false })
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context, user, category string) ([]service.Entry, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var entries []service.Entry
	for i, t := range f.tasks[user] {
		if category != "" && t.Category != category {
			continue
		}
		entries = append(entries, service.Entry{Num: i + 1, Task: t})
	}
	return entries, nil
}

// ListPriorities implements service.Service.
func (f *FakeService) ListPriorities(ctx context.Context, user string) ([]service.Entry, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var entries []service.Entry
	for i, t := range f.tasks[user] {
		if t.Priority {
			entries = append(entries, service.Entry{Num: i + 1, Task: t})
		}
	}
	return entries, nil
}

// Select implements service.Service.
func (f *FakeService) Select(ctx context.Context, user string, index int) (service.Task, error) {
	if f.SelectErr != nil {
		return service.Task{}, f.SelectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := f.tasks[user]
	if index < 1 || index > len(tasks) {
		return service.Task{}, store.ErrIndexOutOfRange
	}
	f.current[user] = tasks[index-1].CreatedAt
	return tasks[index-1], nil
}

// Unselect implements service.Service.
func (f *FakeService) Unselect(ctx context.Context, user string) error {
	if f.UnselectErr != nil {
		return f.UnselectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current[user] = ""
	return nil
}

// Current implements service.Service.
func (f *FakeService) Current(ctx context.Context, user string) (service.Task, bool, error) {
	if f.CurrentErr != nil {
		return service.Task{}, false, f.CurrentErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	ref := f.current[user]
	if ref == "" {
		return service.Task{}, false, nil
	}
	for _, t := range f.tasks[user] {
		if t.CreatedAt == ref {
			return t, true, nil
		}
	}
	return service.Task{}, false, nil
}

// Recommend implements service.Service.
func (f *FakeService) Recommend(ctx context.Context, user string, style service.Style) (service.Task, error) {
	if f.RecommendErr != nil {
		return service.Task{}, f.RecommendErr
	}
	if style != service.StyleType && style != service.StyleDispersed {
		return service.Task{}, store.ErrInvalidStyle
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var pool, priority []service.Task
	for _, t := range f.tasks[user] {
		if t.Done {
			continue
		}
		pool = append(pool, t)
		if t.Priority {
			priority = append(priority, t)
		}
	}
	if len(pool) == 0 {
		return service.Task{}, store.ErrNoCandidates
	}
	if len(priority) > 0 {
		pool = priority
	}

	var cur *service.Task
	for i, t := range f.tasks[user] {
		if t.CreatedAt == f.current[user] && f.current[user] != "" {
			cur = &f.tasks[user][i]
			break
		}
	}
	if cur != nil && len(pool) > 1 {
		var filtered []service.Task
		for _, t := range pool {
			same := t.Category == cur.Category
			if (style == service.StyleType) == same {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	chosen := pool[0]
	f.current[user] = chosen.CreatedAt
	return chosen, nil
}

// Generate implements service.Service.
func (f *FakeService) Generate(ctx context.Context, user, prompt string, useAI bool) ([]service.Task, error) {
	if f.GenerateErr != nil {
		return nil, f.GenerateErr
	}

	var specs []genai.Task
	if useAI {
		if f.Generator == nil {
			return nil, genai.ErrNoAPIKey
		}
		generated, err := f.Generator.Generate(ctx, prompt)
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
	for _, spec := range specs {
		t, err := f.Add(ctx, user, spec.Text, spec.Category, spec.Priority)
		if err != nil {
			return nil, err
		}
		added = append(added, t)
	}
	return added, nil
}

// Users implements service.Service.
func (f *FakeService) Users(ctx context.Context) ([]string, error) {
	if f.UsersErr != nil {
		return nil, f.UsersErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	users := make([]string, 0, len(f.tasks))
	for u := range f.tasks {
		users = append(users, u)
	}
	sort.Strings(users)
	return users, nil
}

func (f *FakeService) updateTask(user string, index int, fn func(*service.Task)) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := f.tasks[user]
	if index < 1 || index > len(tasks) {
		return service.Task{}, store.ErrIndexOutOfRange
	}
	fn(&tasks[index-1])
	return tasks[index-1], nil
}
