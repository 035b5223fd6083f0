package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nitt-hospital/backend/internal/queue/task"
	"github.com/nitt-hospital/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type sendNoticeProcessor struct {
	workers *worker.Workers
}

func NewSendNoticeProcessor(workers *worker.Workers) *sendNoticeProcessor {
	return &sendNoticeProcessor{
		workers: workers,
	}
}

func (p *sendNoticeProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendNotice
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send notice task json unmarshal failed: %w", err)
	}

	if err = p.workers.NoticeSender.SendNotice(ctx, data); err != nil {
		return fmt.Errorf("send notice failed: %w", err)
	}

	return nil
}
