package application

import (
	"errors"
	"fmt"
	"strings"

	"podium/models"
)

// Sentinel errors for identity and lookup failures.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// InvalidTransitionError reports a status edge that is not in the adjacency
// graph for the current state.
type InvalidTransitionError struct {
	From models.ApplicationStatus
	To   models.ApplicationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

// IncompleteApplicationError carries the list of required fields still empty
// at submission time.
type IncompleteApplicationError struct {
	Missing []string
}

func (e *IncompleteApplicationError) Error() string {
	return "application incomplete, missing: " + strings.Join(e.Missing, ", ")
}

// IneligibleActionError reports a guard predicate failure: the requested form
// or action is not available in the application's current status.
type IneligibleActionError struct {
	Action string
	Status models.ApplicationStatus
}

func (e *IneligibleActionError) Error() string {
	return fmt.Sprintf("%s not available while application is %s", e.Action, e.Status)
}

// ValidationError carries per-field messages for a malformed payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
