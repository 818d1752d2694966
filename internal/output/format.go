// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/domain"
)

// NoTasks is printed when a listing is empty.
const NoTasks = "no tasks found"

// FormatTask formats a task line for listings.
// Format: "{ID:>4}  [x] {TITLE}\n", with "[ ]" for pending tasks.
func FormatTask(w io.Writer, task domain.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", task.ID, checkbox(task.Completed), normalizeText(task.Title))
}

// FormatTasks formats each task with FormatTask, or NoTasks when the slice
// is empty and quiet is false.
func FormatTasks(w io.Writer, tasks []domain.Task, quiet bool) {
	if len(tasks) == 0 {
		if !quiet {
			fmt.Fprintln(w, NoTasks)
		}
		return
	}
	for _, task := range tasks {
		FormatTask(w, task)
	}
}

// FormatTaskDetail formats all fields of a single task, one per line.
func FormatTaskDetail(w io.Writer, task domain.Task) {
	status := "pending"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "id:          %d\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeText(task.Title))
	fmt.Fprintf(w, "description: %s\n", normalizeText(task.Description))
	fmt.Fprintf(w, "status:      %s\n", status)
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeText normalizes a field for single-line display.
// - Empty or whitespace-only values become "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")

	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
