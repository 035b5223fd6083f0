package worker

import (
	"context"
	"fmt"

	"github.com/nitt-hospital/backend/internal/queue/task"
	"github.com/nitt-hospital/backend/pkg/logger"

	"go.uber.org/zap"
)

type noticeMailer interface {
	SendNotice(ctx context.Context, notice task.SendNotice) error
}

type noticeSender struct {
	mailer noticeMailer
}

func newNoticeSender(mailer noticeMailer) *noticeSender {
	return &noticeSender{
		mailer: mailer,
	}
}

func (s *noticeSender) SendNotice(ctx context.Context, notice task.SendNotice) error {
	if err := s.mailer.SendNotice(ctx, notice); err != nil {
		return fmt.Errorf("send %s notice failed: %w", notice.Kind, err)
	}

	logger.Debug("notice sent", zap.String("email", notice.Email), zap.String("kind", string(notice.Kind)))

	return nil
}
