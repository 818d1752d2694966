package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"tasktrack/internal/domain"
	"tasktrack/internal/service"
)

// CreateTaskRequest is the body of POST /api/tasks. Fields are capped at
// 1024 characters. Blank values are rejected by the service, not here, so
// clients get the service's message.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"max=1024"`
	Description string `json:"description" validate:"max=1024"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}. Updates replace the
// whole task, so completed must be present.
type UpdateTaskRequest struct {
	Title       string `json:"title" validate:"max=1024"`
	Description string `json:"description" validate:"max=1024"`
	Completed   *bool  `json:"completed" validate:"required"`
}

// TaskHandler handles task HTTP requests.
type TaskHandler struct {
	service   service.Service
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTaskHandler creates a TaskHandler over svc.
func NewTaskHandler(svc service.Service, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New()
	// Report JSON names in validation messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &TaskHandler{
		service:   svc,
		validator: v,
		logger:    logger.With("component", "task_handler"),
	}
}

// ListTasks handles GET /api/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks(r.Context())
	h.respondWithTasks(w, r, tasks, err)
}

// ListCompletedTasks handles GET /api/tasks/completed.
func (h *TaskHandler) ListCompletedTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetCompletedTasks(r.Context())
	h.respondWithTasks(w, r, tasks, err)
}

// ListPendingTasks handles GET /api/tasks/pending.
func (h *TaskHandler) ListPendingTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetPendingTasks(r.Context())
	h.respondWithTasks(w, r, tasks, err)
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	task, err := h.service.GetTaskByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, task)
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.service.CreateTask(r.Context(), req.Title, req.Description)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.service.UpdateTask(r.Context(), domain.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Completed:   *req.Completed,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.respondWithStoredTask(w, r, id, http.StatusOK)
}

// ToggleTask handles POST /api/tasks/{id}/toggle.
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.ToggleTaskCompletion(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.respondWithStoredTask(w, r, id, http.StatusOK)
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path parameter and writes a 400 when it is not a
// positive integer.
func (h *TaskHandler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return false
	}
	return true
}

func (h *TaskHandler) respondWithTasks(w http.ResponseWriter, r *http.Request, tasks []domain.Task, err error) {
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	RespondWithJSON(w, http.StatusOK, tasks)
}

// respondWithStoredTask re-reads the task so the response shows what the
// store now holds (trimmed fields included).
func (h *TaskHandler) respondWithStoredTask(w http.ResponseWriter, r *http.Request, id, status int) {
	task, err := h.service.GetTaskByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, status, task)
}

// handleServiceError writes the mapped status and a safe message. Server
// side failures are logged with their details.
func (h *TaskHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"error", err,
			"status", status,
			"trace_id", GetTraceID(r.Context()),
			"path", r.URL.Path)
	}
	RespondWithError(w, r, status, GetSafeErrorMessage(err))
}
