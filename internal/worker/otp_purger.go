package worker

import (
	"context"

	"github.com/nitt-hospital/backend/pkg/logger"

	"go.uber.org/zap"
)

type expiredOtpDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type otpPurger struct {
	otps expiredOtpDeleter
}

func newOtpPurger(otps expiredOtpDeleter) *otpPurger {
	return &otpPurger{otps: otps}
}

func (p *otpPurger) PurgeExpired(ctx context.Context) error {
	count, err := p.otps.DeleteExpired(ctx)
	if err != nil {
		return err
	}

	logger.Info("expired otps purged", zap.Int64("count", count))

	return nil
}
