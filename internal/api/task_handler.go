package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/calebm/taskman-api/internal/api/shared"
	"github.com/calebm/taskman-api/internal/domain"
	"github.com/calebm/taskman-api/internal/store"
)

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	taskStore store.TaskStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}

	return &TaskHandler{
		taskStore: taskStore,
		validator: NewValidator(),
		logger:    log.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /users/{userID}/tasks.
// The owning user must exist (404 otherwise); status and priority default
// to pending/medium when absent. Returns the persisted task (201).
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathID(r, "userID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req TaskRequest

	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := domain.NewTask(
		userID,
		req.Title,
		req.Description,
		domain.TaskStatus(req.Status),
		domain.TaskPriority(req.Priority),
		req.DueDate,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	created, err := h.taskStore.Create(r.Context(), task)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// ListTasks handles GET /users/{userID}/tasks.
// An optional ?status= query restricts the result to one status; an
// invalid value yields 400 before any storage access.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathID(r, "userID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var statusFilter *domain.TaskStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.IsValid() {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid status value")
			return
		}
		statusFilter = &status
	}

	tasks, err := h.taskStore.ListByUser(r.Context(), userID, statusFilter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// UpdateTask handles PUT /tasks/{taskID}.
// Full-replace semantics: all mutable fields are applied unconditionally
// and the update timestamp is refreshed. Returns the persisted task.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req TaskRequest

	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	status := domain.TaskStatus(req.Status)
	if status == "" {
		status = domain.DefaultTaskStatus
	}
	priority := domain.TaskPriority(req.Priority)
	if priority == "" {
		priority = domain.DefaultTaskPriority
	}

	task := &domain.Task{
		ID:          taskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
	}

	updated, err := h.taskStore.Update(r.Context(), task)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}
