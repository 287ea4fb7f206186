package scheduler

import (
	"context"
	"fmt"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/email"
	"zylentrix_crm_backend/internal/tasks/repository"
	"zylentrix_crm_backend/platform/config"
	"zylentrix_crm_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg *config.Config, pool *pgxpool.Pool, sender email.Sender, log *logger.Logger) (*Worker, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.AsynqQueue
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.AsynqConcurrency
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskDeadlineReminder, w.handleDeadlineReminder)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleDeadlineReminder emails the assignee when their follow-up task is
// still pending close to its due date. Tasks resolved in the meantime are
// skipped silently.
func (w *Worker) handleDeadlineReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDeadlineReminderPayload(task)
	if err != nil {
		return err
	}

	taskID, err := uuid.Parse(payload.TaskID)
	if err != nil {
		return err
	}

	stored, err := w.repo.GetByID(ctx, taskID)
	if err != nil {
		// The task may have been deleted since scheduling; nothing to remind.
		w.log.Warn("deadline reminder skipped", "task_id", payload.TaskID, "error", err)
		return nil
	}

	if stored.Status != domain.TaskStatusPending {
		return nil
	}

	if err := w.sender.SendTaskReminderEmail(ctx, payload.AssigneeEmail, payload.AssigneeName, stored.Title, payload.DueDate); err != nil {
		return fmt.Errorf("send reminder email: %w", err)
	}

	w.log.Info("deadline reminder sent", "task_id", payload.TaskID, "assignee_email", payload.AssigneeEmail)
	return nil
}
