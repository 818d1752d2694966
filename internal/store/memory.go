package store

import (
	"context"
	"sync"

	"tasktrack/internal/domain"
)

// Compile-time check to ensure Memory implements Store.
var _ Store = (*Memory)(nil)

// Memory keeps tasks in process memory for the lifetime of the value.
// Tasks go in and come out as copies; callers never share state with the
// store.
type Memory struct {
	mu     sync.RWMutex
	tasks  []domain.Task
	nextID int
}

// NewMemory creates an empty store whose first generated id is 1.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// FindAll returns a snapshot of all tasks in insertion order.
func (m *Memory) FindAll(ctx context.Context) ([]domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]domain.Task, len(m.tasks))
	copy(result, m.tasks)
	return result, nil
}

// FindByID implements Store.
func (m *Memory) FindByID(ctx context.Context, id int) (domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return domain.Task{}, ErrNotFound
	}
	return m.tasks[i], nil
}

// Save implements Store.
// Manual ids do not reserve anything: the counter only moves on generated
// ids, so a later generated id may collide with an earlier manual one.
func (m *Memory) Save(ctx context.Context, t *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.ID == 0 {
		t.ID = m.nextID
		m.nextID++
	}
	m.tasks = append(m.tasks, *t)
	return nil
}

// Update implements Store.
func (m *Memory) Update(ctx context.Context, t domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(t.ID)
	if i < 0 {
		return ErrNotFound
	}
	m.tasks[i] = t
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(id); i >= 0 {
		m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	}
	return nil
}

// indexOf returns the position of the first task with id, or -1.
// Caller must hold mu.
func (m *Memory) indexOf(id int) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
