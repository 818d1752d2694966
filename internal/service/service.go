// Package service validates task input and composes store primitives into
// the operations exposed to the CLI and the HTTP API.
package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"tasktrack/internal/domain"
	"tasktrack/internal/store"
)

// Service defines the task operations available to presentation layers.
// Presentation code never talks to a store directly.
type Service interface {
	// GetAllTasks returns every task in store order.
	GetAllTasks(ctx context.Context) ([]domain.Task, error)

	// GetTaskByID returns a task or store.ErrNotFound.
	GetTaskByID(ctx context.Context, id int) (domain.Task, error)

	// CreateTask validates and stores a new pending task.
	// Returns the stored task with its assigned id.
	CreateTask(ctx context.Context, title, description string) (domain.Task, error)

	// UpdateTask validates t and replaces the stored task with the same id.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask removes an existing task.
	// Returns store.ErrNotFound if it does not exist.
	DeleteTask(ctx context.Context, id int) error

	// ToggleTaskCompletion flips the completed flag of a task.
	ToggleTaskCompletion(ctx context.Context, id int) error

	// GetCompletedTasks returns the completed tasks in store order.
	GetCompletedTasks(ctx context.Context) ([]domain.Task, error)

	// GetPendingTasks returns the pending tasks in store order.
	GetPendingTasks(ctx context.Context) ([]domain.Task, error)
}

// Compile-time check to ensure TaskService implements Service.
var _ Service = (*TaskService)(nil)

// TaskService implements Service on top of any store.Store.
// It references the store but does not own it.
type TaskService struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a TaskService over st.
// A nil logger falls back to slog.Default().
func New(st store.Store, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		store:  st,
		logger: logger.With("component", "task_service"),
	}
}

var (
	defaultOnce    sync.Once
	defaultService *TaskService
)

// Default returns the process-wide service. It is built on first use over a
// fresh in-memory store (empty, first id 1) and shared afterwards.
// Prefer New with an explicit store; tests must never use Default.
func Default() *TaskService {
	defaultOnce.Do(func() {
		defaultService = New(store.NewMemory(), nil)
	})
	return defaultService
}

// GetAllTasks implements Service.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

// GetTaskByID implements Service.
func (s *TaskService) GetTaskByID(ctx context.Context, id int) (domain.Task, error) {
	t, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.logFindError(err, id)
		return domain.Task{}, err
	}
	return t, nil
}

// CreateTask implements Service.
// Validation failures never reach the store.
func (s *TaskService) CreateTask(ctx context.Context, title, description string) (domain.Task, error) {
	title, description, err := validate(title, description)
	if err != nil {
		s.logger.Debug("rejected task creation", "error", err)
		return domain.Task{}, err
	}

	t := domain.Task{
		ID:          0,
		Title:       title,
		Description: description,
		Completed:   false,
	}
	if err := s.store.Save(ctx, &t); err != nil {
		s.logger.Error("failed to save task", "error", err)
		return domain.Task{}, err
	}

	s.logger.Debug("task created", "task_id", t.ID)
	return t, nil
}

// UpdateTask implements Service.
// Title and description are trimmed; Completed is stored as supplied.
func (s *TaskService) UpdateTask(ctx context.Context, t domain.Task) error {
	title, description, err := validate(t.Title, t.Description)
	if err != nil {
		s.logger.Debug("rejected task update", "error", err, "task_id", t.ID)
		return err
	}

	if _, err := s.store.FindByID(ctx, t.ID); err != nil {
		s.logFindError(err, t.ID)
		return err
	}

	updated := domain.Task{
		ID:          t.ID,
		Title:       title,
		Description: description,
		Completed:   t.Completed,
	}
	if err := s.store.Update(ctx, updated); err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", t.ID)
		return err
	}

	s.logger.Debug("task updated", "task_id", t.ID)
	return nil
}

// DeleteTask implements Service.
// Existence is checked before the store delete is issued.
func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		s.logFindError(err, id)
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete task", "error", err, "task_id", id)
		return err
	}

	s.logger.Debug("task deleted", "task_id", id)
	return nil
}

// ToggleTaskCompletion implements Service.
// The fetched task is never modified; a flipped copy is written back.
func (s *TaskService) ToggleTaskCompletion(ctx context.Context, id int) error {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.logFindError(err, id)
		return err
	}

	toggled := current
	toggled.Completed = !current.Completed

	if err := s.store.Update(ctx, toggled); err != nil {
		s.logger.Error("failed to toggle task", "error", err, "task_id", id)
		return err
	}

	s.logger.Debug("task toggled", "task_id", id, "completed", toggled.Completed)
	return nil
}

// GetCompletedTasks implements Service.
func (s *TaskService) GetCompletedTasks(ctx context.Context) ([]domain.Task, error) {
	return s.filter(ctx, true)
}

// GetPendingTasks implements Service.
func (s *TaskService) GetPendingTasks(ctx context.Context) ([]domain.Task, error) {
	return s.filter(ctx, false)
}

func (s *TaskService) filter(ctx context.Context, completed bool) ([]domain.Task, error) {
	all, err := s.GetAllTasks(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Task, 0, len(all))
	for _, t := range all {
		if t.Completed == completed {
			result = append(result, t)
		}
	}
	return result, nil
}

// logFindError logs a failed lookup. Missing tasks are an expected outcome
// and stay at debug level.
func (s *TaskService) logFindError(err error, id int) {
	if store.IsNotFound(err) {
		s.logger.Debug("task not found", "task_id", id)
		return
	}
	s.logger.Error("failed to retrieve task", "error", err, "task_id", id)
}

// validate checks title before description and returns both trimmed.
func validate(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", ErrEmptyTitle
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return "", "", ErrEmptyDescription
	}
	return title, description, nil
}
