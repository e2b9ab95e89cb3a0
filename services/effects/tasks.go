package effects

import (
	"encoding/json"

	"podium/models"

	"github.com/hibiken/asynq"
)

const (
	TypeNotifySend    = "effect:notify"
	TypeInvoiceCreate = "effect:invoice"
)

// NewNotifyTask builds the queued task for an email effect.
func NewNotifyTask(payload models.NotificationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifySend, b), nil
}

// NewInvoiceTask builds the queued task for an invoice effect.
func NewInvoiceTask(req models.InvoiceRequest) (*asynq.Task, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInvoiceCreate, b), nil
}
