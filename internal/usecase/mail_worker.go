package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"gitlab.com/ingwane/api/enquiry-service/internal/config"
	"gitlab.com/ingwane/api/enquiry-service/internal/mailer"
	"gitlab.com/ingwane/api/enquiry-service/internal/model"
	"gitlab.com/ingwane/api/enquiry-service/internal/observer"
	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
)

// MailTaskData holds the necessary data for one mail dispatch task.
type MailTaskData struct {
	Ctx     context.Context // Context derived for the task, NOT the original request context
	Kind    string          // mailer.KindConfirmation or mailer.KindAdminNotification
	Enquiry *model.Enquiry
}

// IMailWorker defines the interface for the mail dispatch worker pool.
type IMailWorker interface {
	SubmitTask(taskData MailTaskData) error
	Stop()
}

// MailWorker manages the worker pool that sends enquiry emails off the
// request path. A failed send is logged and dropped; the enquiry is
// already persisted by the time a task is submitted.
type MailWorker struct {
	pool       *ants.PoolWithFunc
	mail       mailer.Mailer
	cfg        config.MailWorkerPoolConfig
	baseLogger *zap.Logger
}

// Ensure MailWorker implements IMailWorker
var _ IMailWorker = (*MailWorker)(nil)

// NewMailWorker creates and initializes a new mail dispatch worker pool.
func NewMailWorker(cfg config.MailWorkerPoolConfig, mail mailer.Mailer, baseLogger *zap.Logger) (*MailWorker, error) {
	worker := &MailWorker{
		mail:       mail,
		cfg:        cfg,
		baseLogger: baseLogger.Named("mail_worker"),
	}

	pool, err := ants.NewPoolWithFunc(cfg.PoolSize, func(i interface{}) {
		taskData, ok := i.(MailTaskData)
		if !ok {
			worker.baseLogger.Error("Invalid task data type received", zap.Any("data", i))
			return
		}
		worker.processMailTask(taskData)
	},
		ants.WithExpiryDuration(cfg.ExpiryTime),
		ants.WithNonblocking(false),
		ants.WithMaxBlockingTasks(cfg.QueueSize),
		ants.WithPanicHandler(func(err interface{}) {
			worker.baseLogger.Error("Panic recovered in mail worker", zap.Any("panic_error", err), zap.Stack("stack"))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail worker pool: %w", err)
	}
	worker.pool = pool
	worker.baseLogger.Info("Mail worker pool initialized",
		zap.Int("pool_size", cfg.PoolSize),
		zap.Int("queue_size", cfg.QueueSize),
		zap.Duration("expiry_time", cfg.ExpiryTime),
	)
	return worker, nil
}

// SubmitTask submits a mail dispatch task to the worker pool.
func (w *MailWorker) SubmitTask(taskData MailTaskData) error {
	start := time.Now()
	observer.SetMailQueueLength(w.pool.Waiting())

	err := w.pool.Invoke(taskData)
	duration := time.Since(start)

	if err != nil {
		w.baseLogger.Warn("Failed to submit mail task to pool",
			zap.String("kind", taskData.Kind),
			zap.Int64("enquiry_id", taskData.Enquiry.ID),
			zap.Duration("submit_duration", duration),
			zap.Error(err),
		)
		observer.IncMailSend(taskData.Kind, "submit_error")
		if errors.Is(err, ants.ErrPoolOverload) {
			return fmt.Errorf("mail pool overload: %w", err)
		}
		return fmt.Errorf("failed to invoke mail task: %w", err)
	}

	w.baseLogger.Debug("Successfully submitted mail task",
		zap.String("kind", taskData.Kind),
		zap.Int64("enquiry_id", taskData.Enquiry.ID),
		zap.Duration("submit_duration", duration),
	)
	return nil
}

// processMailTask contains the actual send executed by a worker goroutine.
func (w *MailWorker) processMailTask(taskData MailTaskData) {
	log := logger.FromContextOr(taskData.Ctx, w.baseLogger).With(
		zap.String("kind", taskData.Kind),
		zap.Int64("enquiry_id", taskData.Enquiry.ID),
	)

	var err error
	switch taskData.Kind {
	case mailer.KindConfirmation:
		err = w.mail.SendConfirmation(taskData.Ctx, taskData.Enquiry)
	case mailer.KindAdminNotification:
		err = w.mail.SendAdminNotification(taskData.Ctx, taskData.Enquiry)
	default:
		log.Error("Unknown mail task kind")
		return
	}

	if err != nil {
		// The send is best effort. The enquiry is persisted and the
		// client already has its response.
		log.Error("Mail task failed", zap.Error(err))
		return
	}
	log.Debug("Mail task completed")
}

// Stop gracefully shuts down the worker pool.
func (w *MailWorker) Stop() {
	if w.pool != nil {
		w.baseLogger.Info("Releasing mail worker pool")
		start := time.Now()
		w.pool.Release()
		w.baseLogger.Info("Mail worker pool released", zap.Duration("duration", time.Since(start)))
	}
}
