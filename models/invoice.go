package models

import "time"

// InvoiceRequest is the queued payload for an invoice effect. AmountCents is
// resolved at dispatch time from the fee-waiver branch.
type InvoiceRequest struct {
	ApplicationID string `json:"applicationId"`
	StudentName   string `json:"studentName"`
	ParentName    string `json:"parentName"`
	ParentEmail   string `json:"parentEmail"`
	AmountCents   int64  `json:"amountCents"`
}

// Invoice is the payable order returned by the payment collaborator.
type Invoice struct {
	ID          string    `bson:"id" json:"id"`
	AmountCents int64     `bson:"amountCents" json:"amountCents"`
	Currency    string    `bson:"currency" json:"currency"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
