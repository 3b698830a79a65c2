package store

import (
	"errors"
	"fmt"
	"math/rand"
)

// Style controls the category affinity of a recommendation.
type Style string

const (
	// StyleType favors candidates sharing the current task's category.
	StyleType Style = "type"

	// StyleDispersed favors candidates in a different category.
	StyleDispersed Style = "dispersed"
)

// IsValid reports whether s is a known recommendation style.
func (s Style) IsValid() bool {
	switch s {
	case StyleType, StyleDispersed:
		return true
	default:
		return false
	}
}

var (
	// ErrInvalidStyle is returned for an unknown recommendation style.
	ErrInvalidStyle = errors.New("store: invalid recommendation style")

	// ErrNoCandidates is returned when no not-done task exists to recommend.
	ErrNoCandidates = errors.New("store: no tasks eligible for recommendation")
)

// Recommend picks a new current task for the record and selects it.
//
// Priority tasks act as a hard override: whenever any not-done priority task
// exists, the pool is narrowed to priority tasks regardless of style. Style is
// a soft category filter relative to the current task's category (same for
// StyleType, different for StyleDispersed); when it would empty the pool it is
// ignored, so a recommendation is produced whenever any eligible task exists.
// The final choice is uniform over the pool via rng.
//
// When no not-done task exists, ErrNoCandidates is returned and the current
// reference is left unchanged.
func (r *Record) Recommend(style Style, rng *rand.Rand) (Task, error) {
	if !style.IsValid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidStyle, style)
	}

	var pool []Task
	var priority []Task
	for _, t := range r.Tasks {
		if t.Done {
			continue
		}
		pool = append(pool, t)
		if t.Priority {
			priority = append(priority, t)
		}
	}
	if len(pool) == 0 {
		return Task{}, ErrNoCandidates
	}
	if len(priority) > 0 {
		pool = priority
	}

	cur, ok := r.CurrentTask()
	if ok && len(pool) > 1 {
		var filtered []Task
		for _, t := range pool {
			same := t.Category == cur.Category
			if (style == StyleType) == same {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	chosen := pool[rng.Intn(len(pool))]
	r.Current = chosen.CreatedAt
	return chosen, nil
}
