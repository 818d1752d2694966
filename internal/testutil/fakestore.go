// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"tasktrack/internal/domain"
	"tasktrack/internal/store"
)

// Compile-time check to ensure FakeStore implements store.Store.
var _ store.Store = (*FakeStore)(nil)

// Call records one store method invocation.
type Call struct {
	Method string
	ID     int
}

// FakeStore is a store.Store double for testing. It behaves like the
// in-memory store, records every call, and can be told to fail any method.
type FakeStore struct {
	mu     sync.Mutex
	tasks  []domain.Task
	nextID int
	calls  []Call

	// Error injection for testing
	FindAllErr  error
	FindByIDErr error
	SaveErr     error
	UpdateErr   error
	DeleteErr   error
}

// NewFakeStore creates an empty FakeStore whose first generated id is 1.
func NewFakeStore() *FakeStore {
	return &FakeStore{nextID: 1}
}

// AddTask seeds a task without recording a call.
// A zero ID is assigned from the counter like Save does.
func (f *FakeStore) AddTask(title, description string, completed bool) domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := domain.Task{ID: f.nextID, Title: title, Description: description, Completed: completed}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of the stored tasks without recording a call.
func (f *FakeStore) Tasks() []domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Calls returns the recorded calls in order.
func (f *FakeStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]Call, len(f.calls))
	copy(result, f.calls)
	return result
}

// Methods returns the names of the recorded calls in order.
func (f *FakeStore) Methods() []string {
	calls := f.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Method
	}
	return names
}

// FindAll implements store.Store.
func (f *FakeStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "FindAll"})
	if f.FindAllErr != nil {
		return nil, f.FindAllErr
	}
	result := make([]domain.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// FindByID implements store.Store.
func (f *FakeStore) FindByID(ctx context.Context, id int) (domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "FindByID", ID: id})
	if f.FindByIDErr != nil {
		return domain.Task{}, f.FindByIDErr
	}
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, store.ErrNotFound
}

// Save implements store.Store.
func (f *FakeStore) Save(ctx context.Context, t *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "Save", ID: t.ID})
	if f.SaveErr != nil {
		return f.SaveErr
	}
	if t.ID == 0 {
		t.ID = f.nextID
		f.nextID++
	}
	f.tasks = append(f.tasks, *t)
	return nil
}

// Update implements store.Store.
func (f *FakeStore) Update(ctx context.Context, t domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "Update", ID: t.ID})
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID {
			f.tasks[i] = t
			return nil
		}
	}
	return store.ErrNotFound
}

// Delete implements store.Store.
func (f *FakeStore) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "Delete", ID: id})
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}
