package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateSubtask checks a Subtask for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the subtask is valid.
func ValidateSubtask(s *Subtask) error {
	var ve ValidationError

	// Name: required and at most 300 characters.
	name := strings.TrimSpace(s.Name)
	if name == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	} else if len([]rune(name)) > 300 {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "must be 300 characters or fewer"})
	}

	if s.ProjectID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "project_id", Message: "is required"})
	}

	// Priority stars: must be 0-5.
	if s.PriorityStars < 0 || s.PriorityStars > 5 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "priority_stars",
			Message: fmt.Sprintf("must be between 0 and 5, got %d", s.PriorityStars),
		})
	}

	// Status: must be a valid enum value (closed set).
	if !s.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", s.Status),
		})
	}

	// Estimated hours: non-negative when present.
	if s.EstimatedHours != nil && *s.EstimatedHours < 0 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "estimated_hours",
			Message: fmt.Sprintf("must not be negative, got %g", *s.EstimatedHours),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateWorkLog checks a WorkLog for constraint violations.
func ValidateWorkLog(wl *WorkLog) error {
	var ve ValidationError

	if wl.SubtaskID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "subtask_id", Message: "is required"})
	}
	if wl.HoursSpent <= 0 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "hours_spent",
			Message: fmt.Sprintf("must be positive, got %g", wl.HoursSpent),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateTaskRequest checks a TaskRequest for constraint violations.
func ValidateTaskRequest(r *TaskRequest) error {
	var ve ValidationError

	if strings.TrimSpace(r.TaskName) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "task_name", Message: "is required"})
	}
	if r.ProjectID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "project_id", Message: "is required"})
	}
	if !r.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", r.Status),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
