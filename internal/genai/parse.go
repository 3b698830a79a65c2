package genai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseTasks extracts task records from a model response. Accepted shapes are
// a bare JSON array of task objects or an object wrapping one under "tasks".
// Markdown code fences around the JSON are stripped. Records without a text
// field are dropped; a response yielding no usable record is an error.
func ParseTasks(raw string) ([]Task, error) {
	body := stripFences(raw)

	var items []Task
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		var wrapped struct {
			Tasks []Task `json:"tasks"`
		}
		if err := json.Unmarshal([]byte(body), &wrapped); err != nil {
			return nil, fmt.Errorf("genai: unparsable response: %w", err)
		}
		items = wrapped.Tasks
	}

	tasks := make([]Task, 0, len(items))
	for _, t := range items {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		tasks = append(tasks, t)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("genai: response contained no tasks")
	}
	return tasks, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
