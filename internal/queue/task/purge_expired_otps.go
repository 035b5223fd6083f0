package task

import (
	"github.com/hibiken/asynq"
)

const (
	PurgeExpiredOtpsTaskName  = "purgeExpiredOtpsTask"
	PurgeExpiredOtpsQueueName = "maintenanceQueue"
)

func NewPurgeExpiredOtpsTask() *asynq.Task {
	return asynq.NewTask(
		PurgeExpiredOtpsTaskName,
		nil,
		asynq.MaxRetry(1),
		asynq.Queue(PurgeExpiredOtpsQueueName),
	)
}
