// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasker/internal/service"
)

// FormatTask formats a numbered task line.
// Format: "{N:>4}  [{done}] {(!) }{[category] }{TEXT}  (added {TS})\n"
// where done is "x" for completed tasks and "(!)" marks priority tasks.
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  [%s] %s%s%s  (added %s)\n",
		num, doneMarker(task), priorityMarker(task), categoryTag(task),
		normalizeText(task.Text), task.CreatedAt)
}

// FormatCurrent formats the current-task line.
func FormatCurrent(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "current: [%s] %s%s%s\n",
		doneMarker(task), priorityMarker(task), categoryTag(task),
		normalizeText(task.Text))
}

// FormatRecommended formats a freshly recommended task.
func FormatRecommended(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "recommended: %s%s%s\n",
		priorityMarker(task), categoryTag(task), normalizeText(task.Text))
}

func doneMarker(task service.Task) string {
	if task.Done {
		return "x"
	}
	return " "
}

func priorityMarker(task service.Task) string {
	if task.Priority {
		return "(!) "
	}
	return ""
}

func categoryTag(task service.Task) string {
	if task.Category == "" {
		return ""
	}
	return fmt.Sprintf("[%s] ", task.Category)
}

// normalizeText normalizes task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
