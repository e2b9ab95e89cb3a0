package effects

import (
	"podium/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher fires the effects owed by a committed transition. Dispatch never
// returns an error: the entity write is already the source of truth, so a
// failed enqueue is logged and swallowed rather than surfaced to the caller.
type Dispatcher interface {
	Dispatch(from, to models.ApplicationStatus, app *models.Application, conf *models.ProgramConfirmation, profile *models.Profile)
}

// AsynqDispatcher enqueues one task per effect on the redis-backed queue; the
// effect worker executes them with asynq's retry semantics.
type AsynqDispatcher struct {
	Client *asynq.Client
	Fees   FeeSchedule
	Logger *zap.Logger
}

// NewAsynqDispatcher creates a dispatcher over the given asynq client.
func NewAsynqDispatcher(client *asynq.Client, fees FeeSchedule, logger *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client, Fees: fees, Logger: logger}
}

// Dispatch enqueues the effects for the from -> to edge.
func (d *AsynqDispatcher) Dispatch(from, to models.ApplicationStatus, app *models.Application, conf *models.ProgramConfirmation, profile *models.Profile) {
	for _, effect := range EffectsFor(from, to, app, conf, profile, d.Fees) {
		var task *asynq.Task
		var err error

		switch {
		case effect.Notification != nil:
			task, err = NewNotifyTask(*effect.Notification)
		case effect.Invoice != nil:
			task, err = NewInvoiceTask(*effect.Invoice)
		default:
			continue
		}
		if err != nil {
			d.Logger.Error("failed to build effect task",
				zap.String("applicationId", app.ID),
				zap.String("from", string(from)),
				zap.String("to", string(to)),
				zap.Error(err))
			continue
		}

		if _, err := d.Client.Enqueue(task); err != nil {
			d.Logger.Error("failed to enqueue effect",
				zap.String("applicationId", app.ID),
				zap.String("type", task.Type()),
				zap.Error(err))
		}
	}
}
