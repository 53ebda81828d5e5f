package api

import "time"

// Common request structures. Successful responses serialize the domain
// entities directly; their JSON tags already exclude the password hash.

// RegisterUserRequest defines the payload for the user registration endpoint.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// TaskRequest defines the payload for the task creation and update
// endpoints (updates are full-replace, so the shapes are identical).
// Status and priority default to pending/medium when absent; when present
// they must be valid enum values. The taskstatus/taskpriority validators
// delegate to the domain enum types.
type TaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=1"`
	Description *string    `json:"description"`
	Status      string     `json:"status"      validate:"omitempty,taskstatus"`
	Priority    string     `json:"priority"    validate:"omitempty,taskpriority"`
	DueDate     *time.Time `json:"due_date"`
}
