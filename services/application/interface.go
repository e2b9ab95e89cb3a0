package application

import (
	applicationRepo "podium/database/repository/application"
	confirmationRepo "podium/database/repository/confirmation"
	financialAidRepo "podium/database/repository/financialaid"
	profileRepo "podium/database/repository/profile"
	"podium/models"
	"podium/services/effects"

	"go.uber.org/zap"
)

// ConfirmationForm is the post-acceptance consent and logistics payload.
type ConfirmationForm struct {
	StudentName         string `json:"studentName"`
	ParentName          string `json:"parentName"`
	EmergencyContact    string `json:"emergencyContact"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	MedicalConditions   string `json:"medicalConditions"`
	AdditionalNotes     string `json:"additionalNotes"`

	LiabilityWaiver     bool `json:"liabilityWaiver"`
	MedicalRelease      bool `json:"medicalRelease"`
	MediaRelease        bool `json:"mediaRelease"`
	ProgramGuidelines   bool `json:"programGuidelines"`
	FinancialAidRequest bool `json:"financialAidRequest"`
}

// FinancialAidForm is the aid request payload.
type FinancialAidForm struct {
	Dependents         string `json:"dependents"`
	HouseholdIncome    string `json:"householdIncome"`
	ReceivedAssistance bool   `json:"receivedAssistance"`
	Circumstances      string `json:"circumstances"`
	WillProvideReturns bool   `json:"willProvideReturns"`
}

// ApplicationService drives the intake lifecycle. Every call takes the
// explicit Actor identity; there is no ambient session state.
type ApplicationService interface {
	// GetOwn returns the actor's application, or nil when not started.
	GetOwn(actor Actor) (*models.Application, error)
	// SaveDraft upserts applicant content fields. The first save creates the
	// application IN_PROGRESS; drafts never change status afterwards.
	SaveDraft(actor Actor, draft models.ApplicationDraft) (*models.Application, error)
	// Submit moves the actor's application IN_PROGRESS -> SUBMITTED after the
	// eligibility guard passes. Submitting an already SUBMITTED application
	// is a no-op and dispatches nothing.
	Submit(actor Actor) (*models.Application, error)

	// GetConfirmation returns the confirmation form data; reachable only
	// while the application is ACCEPTED or CONFIRMED.
	GetConfirmation(actor Actor) (*models.ProgramConfirmation, error)
	// SubmitConfirmation validates consents, persists the form and moves the
	// application ACCEPTED -> CONFIRMED.
	SubmitConfirmation(actor Actor, form ConfirmationForm) (*models.ProgramConfirmation, error)

	// GetFinancialAid returns the actor's aid application, or nil.
	GetFinancialAid(actor Actor) (*models.FinancialAidApplication, error)
	// SubmitFinancialAid creates the aid application when the guard allows it.
	SubmitFinancialAid(actor Actor, form FinancialAidForm) (*models.FinancialAidApplication, error)

	// Decide applies an admin-driven transition to any application.
	Decide(actor Actor, applicationID string, to models.ApplicationStatus) (*models.Application, error)
	// SetUDLStudent flips the admin-writable fee-waiver flag.
	SetUDLStudent(actor Actor, applicationID string, udl bool) (*models.Application, error)
}

// DefaultApplicationService is the production implementation.
type DefaultApplicationService struct {
	Repo        applicationRepo.ApplicationRepository
	ProfileRepo profileRepo.ProfileRepository
	ConfRepo    confirmationRepo.ConfirmationRepository
	AidRepo     financialAidRepo.FinancialAidRepository
	Effects     effects.Dispatcher
	Logger      *zap.Logger
}
