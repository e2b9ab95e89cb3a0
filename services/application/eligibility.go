package application

import "podium/models"

// Eligibility guards. All pure reads over entity snapshots; the service layer
// decides what to do with a failure.

// CanSubmit reports whether the application may move to SUBMITTED: every
// required application field filled and the profile complete. On failure the
// returned IncompleteApplicationError lists exactly the missing fields.
func CanSubmit(app *models.Application, profile *models.Profile) error {
	missing := app.MissingFields()
	if profile == nil {
		missing = append(missing, "profile")
	} else {
		missing = append(missing, profile.MissingFields()...)
	}
	if len(missing) > 0 {
		return &IncompleteApplicationError{Missing: missing}
	}
	return nil
}

// CanAccessConfirmation reports whether the confirmation form is reachable.
// ACCEPTED means the form is writable; CONFIRMED means read-only.
func CanAccessConfirmation(app *models.Application) (writable bool, err error) {
	switch app.Status {
	case models.StatusAccepted:
		return true, nil
	case models.StatusConfirmed:
		return false, nil
	default:
		return false, &IneligibleActionError{Action: "confirmation form", Status: app.Status}
	}
}

// CanSubmitFinancialAid reports whether a financial aid application may be
// created: the application is CONFIRMED, the confirmation requested aid, and
// no aid application exists yet (a filed application locks the form).
func CanSubmitFinancialAid(app *models.Application, conf *models.ProgramConfirmation, existing *models.FinancialAidApplication) error {
	if app.Status != models.StatusConfirmed {
		return &IneligibleActionError{Action: "financial aid application", Status: app.Status}
	}
	if conf == nil || !conf.FinancialAidRequest {
		return &IneligibleActionError{Action: "financial aid application", Status: app.Status}
	}
	if existing != nil {
		return &IneligibleActionError{Action: "financial aid resubmission", Status: app.Status}
	}
	return nil
}
