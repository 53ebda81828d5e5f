package domain

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Enumerated task statuses. These are the only values accepted by the
// validation layer and enforced by the tasks table check constraint.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// DefaultTaskStatus is applied when a request omits the status field.
const DefaultTaskStatus = TaskStatusPending

// IsValid checks if the status is one of the enumerated values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Enumerated task priorities.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// DefaultTaskPriority is applied when a request omits the priority field.
const DefaultTaskPriority = TaskPriorityMedium

// IsValid checks if the priority is one of the enumerated values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// Task represents a unit of work owned by a user. ID, CreatedAt and
// UpdatedAt are assigned by the store; UpdatedAt is refreshed on every
// mutation. Description and DueDate are optional.
type Task struct {
	ID          int64        `json:"task_id"`
	UserID      int64        `json:"user_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a Task ready for insertion under the given user.
// Empty status and priority receive the documented defaults; present but
// invalid values fail validation rather than being defaulted.
func NewTask(
	userID int64,
	title string,
	description *string,
	status TaskStatus,
	priority TaskPriority,
	dueDate *time.Time,
) (*Task, error) {
	if status == "" {
		status = DefaultTaskStatus
	}
	if priority == "" {
		priority = DefaultTaskPriority
	}

	task := &Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return ErrInvalidID
	}

	return t.validateFields()
}

// ValidateForUpdate checks the fields an update is allowed to touch.
// The owning user is immutable and may be absent on an update payload.
func (t *Task) ValidateForUpdate() error {
	if t.ID <= 0 {
		return ErrInvalidID
	}

	return t.validateFields()
}

func (t *Task) validateFields() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}

	if !t.Status.IsValid() {
		return NewValidationError("status", string(t.Status),
			"must be one of pending, in_progress, completed", ErrInvalidTaskStatus)
	}

	if !t.Priority.IsValid() {
		return NewValidationError("priority", string(t.Priority),
			"must be one of low, medium, high", ErrInvalidTaskPriority)
	}

	return nil
}
