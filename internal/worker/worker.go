package worker

import (
	"context"

	"github.com/nitt-hospital/backend/internal/queue/task"
	"github.com/nitt-hospital/backend/internal/service"
)

type Workers struct {
	NoticeSender NoticeSender
	OtpPurger    OtpPurger
}

type Deps struct {
	Services *service.Services
}

type NoticeSender interface {
	SendNotice(ctx context.Context, notice task.SendNotice) error
}

type OtpPurger interface {
	PurgeExpired(ctx context.Context) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		NoticeSender: newNoticeSender(deps.Services.Emails),
		OtpPurger:    newOtpPurger(deps.Services.Otps),
	}
}
