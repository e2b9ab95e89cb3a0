package models

// NotificationKind identifies an email template.
type NotificationKind string

const (
	NotifySubmitted            NotificationKind = "application_submitted"
	NotifyAccepted             NotificationKind = "decision_accepted"
	NotifyAcceptedUDL          NotificationKind = "decision_accepted_udl"
	NotifyWaitlisted           NotificationKind = "decision_waitlisted"
	NotifyDenied               NotificationKind = "decision_denied"
	NotifyConfirmationReceived NotificationKind = "confirmation_received"
)

// NotificationPayload is the queued payload for an email effect.
type NotificationPayload struct {
	Kind       NotificationKind  `json:"kind"`
	Recipients []string          `json:"recipients"`
	Data       map[string]string `json:"data"`
}
