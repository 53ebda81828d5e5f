package domain

import (
	"errors"
	"testing"
	"time"
)

func TestTaskStatusIsValid(t *testing.T) {
	t.Parallel()

	valid := []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}
	for _, status := range valid {
		if !status.IsValid() {
			t.Errorf("Expected status %q to be valid", status)
		}
	}

	invalid := []TaskStatus{"", "done", "PENDING", "in progress"}
	for _, status := range invalid {
		if status.IsValid() {
			t.Errorf("Expected status %q to be invalid", status)
		}
	}
}

func TestTaskPriorityIsValid(t *testing.T) {
	t.Parallel()

	valid := []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
	for _, priority := range valid {
		if !priority.IsValid() {
			t.Errorf("Expected priority %q to be valid", priority)
		}
	}

	invalid := []TaskPriority{"", "urgent", "HIGH"}
	for _, priority := range invalid {
		if priority.IsValid() {
			t.Errorf("Expected priority %q to be invalid", priority)
		}
	}
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	// Test valid task creation with explicit values
	due := time.Now().UTC().Add(24 * time.Hour)
	desc := "write the report"
	task, err := NewTask(1, "report", &desc, TaskStatusInProgress, TaskPriorityHigh, &due)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Status != TaskStatusInProgress {
		t.Errorf("Expected status %s, got %s", TaskStatusInProgress, task.Status)
	}

	if task.Priority != TaskPriorityHigh {
		t.Errorf("Expected priority %s, got %s", TaskPriorityHigh, task.Priority)
	}

	// Test defaults apply only when fields are absent
	task, err = NewTask(1, "report", nil, "", "", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Status != DefaultTaskStatus {
		t.Errorf("Expected default status %s, got %s", DefaultTaskStatus, task.Status)
	}

	if task.Priority != DefaultTaskPriority {
		t.Errorf("Expected default priority %s, got %s", DefaultTaskPriority, task.Priority)
	}

	// Present-but-invalid values fail rather than being defaulted
	_, err = NewTask(1, "report", nil, "done", "", nil)
	if !errors.Is(err, ErrInvalidTaskStatus) {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}

	_, err = NewTask(1, "report", nil, "", "urgent", nil)
	if !errors.Is(err, ErrInvalidTaskPriority) {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskPriority, err)
	}

	// Test missing owner and title
	_, err = NewTask(0, "report", nil, "", "", nil)
	if !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected error %v, got %v", ErrInvalidID, err)
	}

	_, err = NewTask(1, "", nil, "", "", nil)
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTitle, err)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	validTask := Task{
		ID:       1,
		UserID:   1,
		Title:    "report",
		Status:   TaskStatusPending,
		Priority: TaskPriorityMedium,
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Validation errors carry the offending field and received value
	invalidTask := validTask
	invalidTask.Status = "done"
	err := invalidTask.Validate()
	if !errors.Is(err, ErrInvalidTaskStatus) {
		t.Fatalf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}
	if verr.Field != "status" {
		t.Errorf("Expected field %q, got %q", "status", verr.Field)
	}
	if verr.Value != "done" {
		t.Errorf("Expected value %q, got %q", "done", verr.Value)
	}

	invalidTask = validTask
	invalidTask.Priority = "urgent"
	if err := invalidTask.Validate(); !errors.Is(err, ErrInvalidTaskPriority) {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskPriority, err)
	}
}

func TestTaskValidateForUpdate(t *testing.T) {
	t.Parallel()

	// Update payloads omit the owning user; only the task ID is required
	task := Task{
		ID:       7,
		Title:    "report",
		Status:   TaskStatusCompleted,
		Priority: TaskPriorityLow,
	}

	if err := task.ValidateForUpdate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	task.ID = 0
	if err := task.ValidateForUpdate(); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected error %v, got %v", ErrInvalidID, err)
	}
}
