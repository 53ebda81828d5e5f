package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/calebm/taskman-api/internal/domain"
)

// NewValidator returns a validator with the task enum checks registered.
// The checks delegate to the domain types so the enumerated values live in
// exactly one place.
func NewValidator() *validator.Validate {
	v := validator.New()

	// RegisterValidation only fails on an empty tag name.
	if err := v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		return domain.TaskStatus(fl.Field().String()).IsValid()
	}); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
		return domain.TaskPriority(fl.Field().String()).IsValid()
	}); err != nil {
		panic(err)
	}

	return v
}
