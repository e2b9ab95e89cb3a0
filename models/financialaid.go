package models

import "time"

// AidStatus is the review status of a financial aid application.
type AidStatus string

const (
	AidPending  AidStatus = "PENDING"
	AidApproved AidStatus = "APPROVED"
	AidDenied   AidStatus = "DENIED"
)

// IsValid reports whether s is a known aid status.
func (s AidStatus) IsValid() bool {
	switch s {
	case AidPending, AidApproved, AidDenied:
		return true
	}
	return false
}

// FinancialAidApplication is the aid request tied to a confirmed application.
// One per application, creatable only when the application is CONFIRMED and
// the confirmation requested aid.
type FinancialAidApplication struct {
	ID            string `bson:"id" json:"id"`
	ApplicationID string `bson:"applicationId" json:"applicationId"`

	Dependents         string `bson:"dependents" json:"dependents"`
	HouseholdIncome    string `bson:"householdIncome" json:"householdIncome"`
	ReceivedAssistance bool   `bson:"receivedAssistance" json:"receivedAssistance"`
	Circumstances      string `bson:"circumstances" json:"circumstances"`
	WillProvideReturns bool   `bson:"willProvideReturns" json:"willProvideReturns"`

	Status      AidStatus `bson:"status" json:"status"`
	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
