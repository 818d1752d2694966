// Package domain holds the task entity shared by stores, the service and the
// outer layers.
package domain

// Task is a single unit of work.
//
// An ID of 0 means the task has not been stored yet; the store assigns the
// real identity on save.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
