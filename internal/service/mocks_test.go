package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tasktrack/internal/domain"
)

// MockStore is a testify mock implementation of store.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *MockStore) FindByID(ctx context.Context, id int) (domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(domain.Task)
	return task, args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, t *domain.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockStore) Update(ctx context.Context, t domain.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
