package application

import "podium/models"

// Actor is the explicit identity passed into every core call. Never ambient.
type Actor struct {
	UserID  string
	IsAdmin bool
}

// ValidateTransition checks both the edge and who may drive it. The adjacency
// test delegates to the status graph in models; this layer adds the actor
// rules:
//
//   - IN_PROGRESS and SUBMITTED are applicant-driven (owner only).
//   - CONFIRMED is driven by the owner submitting the confirmation form, or
//     by an admin override.
//   - Decisions (ACCEPTED, WAITLISTED, DENIED), COMPLETED and WITHDRAWN are
//     admin-only.
//
// It never mutates anything; callers apply the write with a conditional
// status update and must revalidate on conflict.
func ValidateTransition(actor Actor, app *models.Application, to models.ApplicationStatus) error {
	if !to.IsValid() {
		return &InvalidTransitionError{From: app.Status, To: to}
	}
	if !app.Status.CanTransitionTo(to) {
		return &InvalidTransitionError{From: app.Status, To: to}
	}

	switch to {
	case models.StatusInProgress, models.StatusSubmitted:
		if actor.UserID != app.UserID {
			return ErrUnauthorized
		}
	case models.StatusConfirmed:
		if !actor.IsAdmin && actor.UserID != app.UserID {
			return ErrUnauthorized
		}
	case models.StatusAccepted, models.StatusWaitlisted, models.StatusDenied,
		models.StatusCompleted, models.StatusWithdrawn:
		if !actor.IsAdmin {
			return ErrUnauthorized
		}
	default:
		return &InvalidTransitionError{From: app.Status, To: to}
	}
	return nil
}
