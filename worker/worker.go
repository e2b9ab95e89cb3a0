package worker

import (
	"context"
	"encoding/json"
	"time"

	"podium/config"
	confirmationRepo "podium/database/repository/confirmation"
	"podium/models"
	"podium/services/effects"
	"podium/services/notification"
	"podium/services/payment"
	"podium/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitEffectWorker runs the effect queue consumer in the background. Tasks are
// retried by asynq on handler error, so mail and billing hiccups never block
// the HTTP path that enqueued them.
func InitEffectWorker(mailer notification.Mailer, invoices payment.InvoiceService, confRepo confirmationRepo.ConfirmationRepository) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEffectQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(effects.TypeNotifySend, handleNotifyTask(mailer, logger))
	mux.HandleFunc(effects.TypeInvoiceCreate, handleInvoiceTask(invoices, confRepo, logger))

	go monitorRedisConnection(logger)

	go func() {
		logger.Info("starting effect worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("effect worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("effect worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleNotifyTask(mailer notification.Mailer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NotificationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid notify payload", zap.Error(err))
			return err
		}

		if err := mailer.Send(ctx, p); err != nil {
			logger.Error("notify task failed",
				zap.String("kind", string(p.Kind)),
				zap.Error(err))
			return err
		}
		return nil
	}
}

func handleInvoiceTask(invoices payment.InvoiceService, confRepo confirmationRepo.ConfirmationRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var req models.InvoiceRequest
		if err := json.Unmarshal(task.Payload(), &req); err != nil {
			logger.Error("invalid invoice payload", zap.Error(err))
			return err
		}

		inv, err := invoices.CreateInvoice(ctx, req)
		if err != nil {
			logger.Error("invoice task failed",
				zap.String("applicationId", req.ApplicationID),
				zap.Error(err))
			return err
		}

		if err := confRepo.SetPayment(req.ApplicationID, inv.ID, inv.Status); err != nil {
			logger.Error("failed to record invoice on confirmation",
				zap.String("applicationId", req.ApplicationID),
				zap.String("invoiceId", inv.ID),
				zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the queue backend periodically to surface
// outages in the logs before tasks start piling up.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEffectQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("effect queue redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
