package asynqserver

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/internal/queue/client"
	"github.com/nitt-hospital/backend/internal/queue/processor"
	"github.com/nitt-hospital/backend/internal/queue/task"
	"github.com/nitt-hospital/backend/internal/worker"
)

func New(cfg *config.Config, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		client.RedisOptions(cfg.Cache),
		asynq.Config{
			Concurrency: cfg.Queue.Concurrency,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

// NewScheduler registers the periodic otp purge. It returns nil when the
// purge interval is not positive.
func NewScheduler(cfg *config.Config) (*asynq.Scheduler, error) {
	if cfg.Queue.OtpPurgeInterval <= 0 {
		return nil, nil
	}

	scheduler := asynq.NewScheduler(client.RedisOptions(cfg.Cache), &asynq.SchedulerOpts{
		LogLevel: asynq.ErrorLevel,
	})

	cronspec := fmt.Sprintf("@every %s", cfg.Queue.OtpPurgeInterval)
	if _, err := scheduler.Register(cronspec, task.NewPurgeExpiredOtpsTask()); err != nil {
		return nil, fmt.Errorf("register otp purge failed: %w", err)
	}

	return scheduler, nil
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.SendNoticeTaskName, processor.NewSendNoticeProcessor(workers))
	mux.Handle(task.PurgeExpiredOtpsTaskName, processor.NewPurgeExpiredOtpsProcessor(workers))
	queues := map[string]int{
		task.SendNoticeQueueName:       2,
		task.PurgeExpiredOtpsQueueName: 1,
	}
	return mux, queues
}
