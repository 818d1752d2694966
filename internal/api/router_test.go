package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/domain"
	"tasktrack/internal/service"
	"tasktrack/internal/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *testutil.FakeStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := testutil.NewFakeStore()
	return NewRouter(service.New(st, logger), logger), st
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) domain.Task {
	t.Helper()
	var task domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func decodeTasks(t *testing.T, rec *httptest.ResponseRecorder) []domain.Task {
	t.Helper()
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	return tasks
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestListTasksEmpty(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/tasks", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateTask(t *testing.T) {
	h, st := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/tasks", `{"title":"  Buy milk ","description":"2 litres"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	expected := domain.Task{ID: 1, Title: "Buy milk", Description: "2 litres"}
	assert.Equal(t, expected, decodeTask(t, rec))
	assert.Equal(t, []domain.Task{expected}, st.Tasks())
}

func TestCreateTaskValidation(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "blank title", body: `{"title":"  ","description":"x"}`, expected: "task has no title"},
		{name: "missing description", body: `{"title":"x"}`, expected: "task has no description"},
		{name: "title checked first", body: `{}`, expected: "task has no title"},
		{name: "malformed body", body: `{"title":`, expected: "Invalid request format"},
		{name: "title too long", body: `{"title":"` + strings.Repeat("a", 1025) + `","description":"x"}`, expected: "Invalid request: title is too long"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, st := newTestRouter(t)

			rec := doRequest(t, h, http.MethodPost, "/api/tasks", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tc.expected, resp.Error)
			assert.NotEmpty(t, resp.TraceID)
			assert.Equal(t, resp.TraceID, rec.Header().Get(TraceHeader))
			assert.Empty(t, st.Tasks(), "nothing should be stored")
		})
	}
}

func TestGetTask(t *testing.T) {
	h, st := newTestRouter(t)
	stored := st.AddTask("Read", "Chapter 3", false)

	rec := doRequest(t, h, http.MethodGet, "/api/tasks/1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stored, decodeTask(t, rec))
}

func TestGetTaskErrors(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		status   int
		expected string
	}{
		{name: "missing", path: "/api/tasks/42", status: http.StatusNotFound, expected: "task not found"},
		{name: "not a number", path: "/api/tasks/abc", status: http.StatusBadRequest, expected: "Invalid task ID"},
		{name: "zero", path: "/api/tasks/0", status: http.StatusBadRequest, expected: "Invalid task ID"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestRouter(t)

			rec := doRequest(t, h, http.MethodGet, tc.path, "")

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.expected, decodeError(t, rec).Error)
		})
	}
}

func TestUpdateTask(t *testing.T) {
	h, st := newTestRouter(t)
	st.AddTask("Old", "old", false)

	rec := doRequest(t, h, http.MethodPut, "/api/tasks/1", `{"title":" New ","description":"new","completed":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	expected := domain.Task{ID: 1, Title: "New", Description: "new", Completed: true}
	assert.Equal(t, expected, decodeTask(t, rec))
	assert.Equal(t, []domain.Task{expected}, st.Tasks())
}

func TestUpdateTaskErrors(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		body     string
		status   int
		expected string
	}{
		{
			name:     "completed required",
			path:     "/api/tasks/1",
			body:     `{"title":"t","description":"d"}`,
			status:   http.StatusBadRequest,
			expected: "Invalid request: completed is required",
		},
		{
			name:     "blank description",
			path:     "/api/tasks/1",
			body:     `{"title":"t","description":" ","completed":false}`,
			status:   http.StatusBadRequest,
			expected: "task has no description",
		},
		{
			name:     "missing task",
			path:     "/api/tasks/9",
			body:     `{"title":"t","description":"d","completed":false}`,
			status:   http.StatusNotFound,
			expected: "task not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, st := newTestRouter(t)
			original := st.AddTask("Old", "old", false)

			rec := doRequest(t, h, http.MethodPut, tc.path, tc.body)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.expected, decodeError(t, rec).Error)
			assert.Equal(t, []domain.Task{original}, st.Tasks())
		})
	}
}

func TestToggleTask(t *testing.T) {
	h, st := newTestRouter(t)
	st.AddTask("Walk dog", "Park", false)

	rec := doRequest(t, h, http.MethodPost, "/api/tasks/1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeTask(t, rec).Completed)

	rec = doRequest(t, h, http.MethodPost, "/api/tasks/1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeTask(t, rec).Completed)

	rec = doRequest(t, h, http.MethodPost, "/api/tasks/2/toggle", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTask(t *testing.T) {
	h, st := newTestRouter(t)
	st.AddTask("A", "a", false)
	b := st.AddTask("B", "b", false)

	rec := doRequest(t, h, http.MethodDelete, "/api/tasks/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []domain.Task{b}, st.Tasks())

	rec = doRequest(t, h, http.MethodDelete, "/api/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompletedAndPendingTasks(t *testing.T) {
	h, st := newTestRouter(t)
	a := st.AddTask("A", "a", true)
	b := st.AddTask("B", "b", false)
	c := st.AddTask("C", "c", true)

	rec := doRequest(t, h, http.MethodGet, "/api/tasks/completed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.Task{a, c}, decodeTasks(t, rec))

	rec = doRequest(t, h, http.MethodGet, "/api/tasks/pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.Task{b}, decodeTasks(t, rec))

	rec = doRequest(t, h, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.Task{a, b, c}, decodeTasks(t, rec))
}

func TestStoreFailureIsNotLeaked(t *testing.T) {
	h, st := newTestRouter(t)
	st.FindAllErr = errors.New("connection refused: 10.0.0.3:5432")

	rec := doRequest(t, h, http.MethodGet, "/api/tasks", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decodeError(t, rec).Error)

	rec = doRequest(t, h, http.MethodPatch, "/api/tasks/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
