package models

import "time"

// ProgramConfirmation is the post-acceptance consent and logistics form. One
// per application; it only exists while the application is ACCEPTED or
// CONFIRMED. All four consent flags must be true for the record to persist —
// enforced at validation time, not by the database.
type ProgramConfirmation struct {
	ID            string `bson:"id" json:"id"`
	ApplicationID string `bson:"applicationId" json:"applicationId"`

	StudentName         string `bson:"studentName" json:"studentName"`
	ParentName          string `bson:"parentName" json:"parentName"`
	EmergencyContact    string `bson:"emergencyContact" json:"emergencyContact"`
	DietaryRestrictions string `bson:"dietaryRestrictions" json:"dietaryRestrictions"`
	MedicalConditions   string `bson:"medicalConditions" json:"medicalConditions"`
	AdditionalNotes     string `bson:"additionalNotes" json:"additionalNotes"`

	LiabilityWaiver   bool `bson:"liabilityWaiver" json:"liabilityWaiver"`
	MedicalRelease    bool `bson:"medicalRelease" json:"medicalRelease"`
	MediaRelease      bool `bson:"mediaRelease" json:"mediaRelease"`
	ProgramGuidelines bool `bson:"programGuidelines" json:"programGuidelines"`

	FinancialAidRequest bool   `bson:"financialAidRequest" json:"financialAidRequest"`
	PaymentStatus       string `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	OrderID             string `bson:"orderId,omitempty" json:"orderId,omitempty"`

	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ConsentsComplete reports whether every required consent has been given.
func (c *ProgramConfirmation) ConsentsComplete() bool {
	return c.LiabilityWaiver && c.MedicalRelease && c.MediaRelease && c.ProgramGuidelines
}

// MissingConsents lists the consent flags still unchecked.
func (c *ProgramConfirmation) MissingConsents() []string {
	var missing []string
	if !c.LiabilityWaiver {
		missing = append(missing, "liabilityWaiver")
	}
	if !c.MedicalRelease {
		missing = append(missing, "medicalRelease")
	}
	if !c.MediaRelease {
		missing = append(missing, "mediaRelease")
	}
	if !c.ProgramGuidelines {
		missing = append(missing, "programGuidelines")
	}
	return missing
}
