package application

import (
	"time"

	"podium/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetOwn returns the actor's application, or nil when not started.
func (s *DefaultApplicationService) GetOwn(actor Actor) (*models.Application, error) {
	return s.Repo.GetByUserID(actor.UserID)
}

// SaveDraft upserts applicant content fields. A user with no application row
// is conceptually NOT_STARTED; the first draft write creates the record
// IN_PROGRESS. Later drafts are plain content updates conditional on the
// status still being IN_PROGRESS, so a submitted or decided application is
// never touched by a stale auto-save.
func (s *DefaultApplicationService) SaveDraft(actor Actor, draft models.ApplicationDraft) (*models.Application, error) {
	app, err := s.Repo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}

	if app == nil {
		app = &models.Application{
			ID:                     uuid.New().String(),
			UserID:                 actor.UserID,
			Status:                 models.StatusInProgress,
			Name:                   draft.Name,
			Email:                  draft.Email,
			School:                 draft.School,
			GradeLevel:             draft.GradeLevel,
			UDLStudent:             draft.UDLStudent,
			YearsOfExperience:      draft.YearsOfExperience,
			NumTournaments:         draft.NumTournaments,
			DebateExperience:       draft.DebateExperience,
			InterestEssay:          draft.InterestEssay,
			SelfAptitudeAssessment: draft.SelfAptitudeAssessment,
		}
		if err := s.Repo.Create(app); err != nil {
			return nil, err
		}
		return app, nil
	}

	if app.Status != models.StatusInProgress {
		return nil, &IneligibleActionError{Action: "application edit", Status: app.Status}
	}

	matched, err := s.Repo.UpdateContent(actor.UserID, draft)
	if err != nil {
		return nil, err
	}
	if !matched {
		// Lost the race against a concurrent transition; the row is locked.
		fresh, ferr := s.Repo.GetByUserID(actor.UserID)
		if ferr != nil || fresh == nil {
			return nil, &IneligibleActionError{Action: "application edit", Status: app.Status}
		}
		return nil, &IneligibleActionError{Action: "application edit", Status: fresh.Status}
	}
	return s.Repo.GetByUserID(actor.UserID)
}

// Submit moves the actor's application IN_PROGRESS -> SUBMITTED. The guard
// runs over a fresh snapshot and the status write is conditional, so the
// transition is revalidated rather than trusted from a cached read.
func (s *DefaultApplicationService) Submit(actor Actor) (*models.Application, error) {
	app, err := s.Repo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}

	// Re-entrant submit: already submitted means nothing to do and no second
	// notification.
	if app.Status == models.StatusSubmitted {
		return app, nil
	}

	if err := ValidateTransition(actor, app, models.StatusSubmitted); err != nil {
		return nil, err
	}

	profile, err := s.ProfileRepo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := CanSubmit(app, profile); err != nil {
		return nil, err
	}

	moved, err := s.Repo.UpdateStatus(app.ID, models.StatusInProgress, models.StatusSubmitted)
	if err != nil {
		return nil, err
	}
	if !moved {
		fresh, ferr := s.Repo.GetByUserID(actor.UserID)
		if ferr != nil || fresh == nil {
			return nil, ErrNotFound
		}
		if fresh.Status == models.StatusSubmitted {
			return fresh, nil
		}
		return nil, &InvalidTransitionError{From: fresh.Status, To: models.StatusSubmitted}
	}

	app.Status = models.StatusSubmitted
	s.Effects.Dispatch(models.StatusInProgress, models.StatusSubmitted, app, nil, profile)
	s.Logger.Info("application submitted",
		zap.String("applicationId", app.ID),
		zap.String("userId", actor.UserID))
	return app, nil
}

// GetConfirmation returns the confirmation form data. The guard admits only
// ACCEPTED (writable) and CONFIRMED (read-only) applications.
func (s *DefaultApplicationService) GetConfirmation(actor Actor) (*models.ProgramConfirmation, error) {
	app, err := s.Repo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}
	if _, err := CanAccessConfirmation(app); err != nil {
		return nil, err
	}
	return s.ConfRepo.GetByApplicationID(app.ID)
}

// SubmitConfirmation validates the consent flags, persists the form, and
// drives ACCEPTED -> CONFIRMED. The confirmation-received notification and,
// when no aid was requested, the invoice request are dispatched after the
// status write commits.
func (s *DefaultApplicationService) SubmitConfirmation(actor Actor, form ConfirmationForm) (*models.ProgramConfirmation, error) {
	app, err := s.Repo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}

	writable, err := CanAccessConfirmation(app)
	if err != nil {
		return nil, err
	}
	if !writable {
		return nil, &IneligibleActionError{Action: "confirmation resubmission", Status: app.Status}
	}

	if err := validateConfirmation(form); err != nil {
		return nil, err
	}
	if err := ValidateTransition(actor, app, models.StatusConfirmed); err != nil {
		return nil, err
	}

	conf := &models.ProgramConfirmation{
		ApplicationID:       app.ID,
		StudentName:         form.StudentName,
		ParentName:          form.ParentName,
		EmergencyContact:    form.EmergencyContact,
		DietaryRestrictions: form.DietaryRestrictions,
		MedicalConditions:   form.MedicalConditions,
		AdditionalNotes:     form.AdditionalNotes,
		LiabilityWaiver:     form.LiabilityWaiver,
		MedicalRelease:      form.MedicalRelease,
		MediaRelease:        form.MediaRelease,
		ProgramGuidelines:   form.ProgramGuidelines,
		FinancialAidRequest: form.FinancialAidRequest,
		SubmittedAt:         time.Now(),
	}
	if err := s.ConfRepo.Upsert(conf); err != nil {
		return nil, err
	}

	moved, err := s.Repo.UpdateStatus(app.ID, models.StatusAccepted, models.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	if !moved {
		fresh, ferr := s.Repo.GetByUserID(actor.UserID)
		if ferr != nil || fresh == nil {
			return nil, ErrNotFound
		}
		// Lost the race. A confirmation record may only exist while the
		// application is ACCEPTED or CONFIRMED, so unless the winner was
		// itself the CONFIRMED edge the just-written form is rolled back.
		if fresh.Status != models.StatusConfirmed {
			if _, derr := s.ConfRepo.DeleteByApplicationIDs([]string{app.ID}); derr != nil {
				s.Logger.Error("failed to roll back confirmation after lost transition race",
					zap.String("applicationId", app.ID),
					zap.String("status", string(fresh.Status)),
					zap.Error(derr))
			}
		}
		return nil, &InvalidTransitionError{From: fresh.Status, To: models.StatusConfirmed}
	}

	app.Status = models.StatusConfirmed
	profile, perr := s.ProfileRepo.GetByUserID(actor.UserID)
	if perr != nil {
		s.Logger.Warn("profile lookup failed during confirmation dispatch",
			zap.String("userId", actor.UserID), zap.Error(perr))
		profile = nil
	}
	s.Effects.Dispatch(models.StatusAccepted, models.StatusConfirmed, app, conf, profile)
	s.Logger.Info("confirmation submitted",
		zap.String("applicationId", app.ID),
		zap.Bool("financialAidRequest", conf.FinancialAidRequest))
	return conf, nil
}

func validateConfirmation(form ConfirmationForm) error {
	fields := map[string]string{}
	if form.StudentName == "" {
		fields["studentName"] = "student name is required"
	}
	if form.ParentName == "" {
		fields["parentName"] = "parent name is required"
	}
	if form.EmergencyContact == "" {
		fields["emergencyContact"] = "emergency contact is required"
	}
	if !form.LiabilityWaiver {
		fields["liabilityWaiver"] = "liability waiver must be accepted"
	}
	if !form.MedicalRelease {
		fields["medicalRelease"] = "medical release must be accepted"
	}
	if !form.MediaRelease {
		fields["mediaRelease"] = "media release must be accepted"
	}
	if !form.ProgramGuidelines {
		fields["programGuidelines"] = "program guidelines must be accepted"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// GetFinancialAid returns the actor's aid application, or nil.
func (s *DefaultApplicationService) GetFinancialAid(actor Actor) (*models.FinancialAidApplication, error) {
	app, err := s.Repo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}
	return s.AidRepo.GetByApplicationID(app.ID)
}

// SubmitFinancialAid creates the aid application once the guard allows it.
// The filed application locks the form; review happens on the admin side.
func (s *DefaultApplicationService) SubmitFinancialAid(actor Actor, form FinancialAidForm) (*models.FinancialAidApplication, error) {
	app, err := s.Repo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}

	conf, err := s.ConfRepo.GetByApplicationID(app.ID)
	if err != nil {
		return nil, err
	}
	existing, err := s.AidRepo.GetByApplicationID(app.ID)
	if err != nil {
		return nil, err
	}
	if err := CanSubmitFinancialAid(app, conf, existing); err != nil {
		return nil, err
	}
	if err := validateFinancialAid(form); err != nil {
		return nil, err
	}

	aid := &models.FinancialAidApplication{
		ID:                 uuid.New().String(),
		ApplicationID:      app.ID,
		Dependents:         form.Dependents,
		HouseholdIncome:    form.HouseholdIncome,
		ReceivedAssistance: form.ReceivedAssistance,
		Circumstances:      form.Circumstances,
		WillProvideReturns: form.WillProvideReturns,
		Status:             models.AidPending,
		SubmittedAt:        time.Now(),
	}
	if err := s.AidRepo.Create(aid); err != nil {
		return nil, err
	}
	s.Logger.Info("financial aid application filed",
		zap.String("applicationId", app.ID))
	return aid, nil
}

func validateFinancialAid(form FinancialAidForm) error {
	fields := map[string]string{}
	if form.Dependents == "" {
		fields["dependents"] = "number of dependents is required"
	}
	if form.HouseholdIncome == "" {
		fields["householdIncome"] = "household income is required"
	}
	if form.Circumstances == "" {
		fields["circumstances"] = "please describe your circumstances"
	} else if len(form.Circumstances) > 1000 {
		fields["circumstances"] = "description must be less than 1000 characters"
	}
	if !form.WillProvideReturns {
		fields["willProvideReturns"] = "you must agree to provide tax returns if requested"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Decide applies an admin-driven transition. The edge is validated against a
// fresh snapshot and the write re-checks the stored status; a concurrent
// change surfaces as InvalidTransitionError rather than a silent overwrite.
func (s *DefaultApplicationService) Decide(actor Actor, applicationID string, to models.ApplicationStatus) (*models.Application, error) {
	app, err := s.Repo.GetByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}

	if err := ValidateTransition(actor, app, to); err != nil {
		return nil, err
	}

	from := app.Status
	moved, err := s.Repo.UpdateStatus(app.ID, from, to)
	if err != nil {
		return nil, err
	}
	if !moved {
		fresh, ferr := s.Repo.GetByID(applicationID)
		if ferr != nil || fresh == nil {
			return nil, ErrNotFound
		}
		return nil, &InvalidTransitionError{From: fresh.Status, To: to}
	}

	app.Status = to
	conf, _ := s.ConfRepo.GetByApplicationID(app.ID)
	profile, perr := s.ProfileRepo.GetByUserID(app.UserID)
	if perr != nil {
		profile = nil
	}
	s.Effects.Dispatch(from, to, app, conf, profile)
	s.Logger.Info("application status changed",
		zap.String("applicationId", app.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("by", actor.UserID))
	return app, nil
}

// SetUDLStudent flips the fee-waiver flag. Admin-writable in any status.
func (s *DefaultApplicationService) SetUDLStudent(actor Actor, applicationID string, udl bool) (*models.Application, error) {
	if !actor.IsAdmin {
		return nil, ErrUnauthorized
	}
	if err := s.Repo.SetUDLStudent(applicationID, udl); err != nil {
		return nil, ErrNotFound
	}
	return s.Repo.GetByID(applicationID)
}
