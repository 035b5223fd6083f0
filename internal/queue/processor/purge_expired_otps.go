package processor

import (
	"context"
	"fmt"

	"github.com/nitt-hospital/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type purgeExpiredOtpsProcessor struct {
	workers *worker.Workers
}

func NewPurgeExpiredOtpsProcessor(workers *worker.Workers) *purgeExpiredOtpsProcessor {
	return &purgeExpiredOtpsProcessor{
		workers: workers,
	}
}

func (p *purgeExpiredOtpsProcessor) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	if err := p.workers.OtpPurger.PurgeExpired(ctx); err != nil {
		return fmt.Errorf("purge expired otps failed: %w", err)
	}

	return nil
}
