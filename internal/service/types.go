package service

// Task represents a single task item.
type Task struct {
	Text      string
	CreatedAt string
	Done      bool
	Category  string
	Priority  bool
}

// Entry pairs a task with its 1-based position in the user's task list.
// Positions are recomputed on every listing and shift after removals.
type Entry struct {
	Num  int
	Task Task
}

// Style selects the category affinity used by Recommend.
type Style string

const (
	// StyleType favors tasks in the same category as the current task.
	StyleType Style = "type"

	// StyleDispersed favors tasks in a different category.
	StyleDispersed Style = "dispersed"
)
