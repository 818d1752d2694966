// Package store defines the task persistence contract and its in-memory
// implementation.
package store

import (
	"context"

	"tasktrack/internal/domain"
)

// Store defines the capability set every task backend provides.
// The service layer depends only on this interface, so backends can be
// swapped (memory, Google Tasks, test doubles).
type Store interface {
	// FindAll returns every stored task in insertion order.
	FindAll(ctx context.Context) ([]domain.Task, error)

	// FindByID returns the first task with the given id.
	// Returns ErrNotFound if there is none.
	FindByID(ctx context.Context, id int) (domain.Task, error)

	// Save appends a task. A zero ID is replaced with the next generated
	// identity and written back to t; a non-zero ID is kept as given.
	Save(ctx context.Context, t *domain.Task) error

	// Update replaces the stored task that has t.ID, keeping its position.
	// Returns ErrNotFound if there is none.
	Update(ctx context.Context, t domain.Task) error

	// Delete removes the first task with the given id.
	// Deleting a missing id is not an error.
	Delete(ctx context.Context, id int) error
}
