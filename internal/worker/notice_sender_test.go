package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/internal/queue/task"
	"github.com/nitt-hospital/backend/internal/repository"
	"github.com/nitt-hospital/backend/internal/service"
	emailProvider "github.com/nitt-hospital/backend/pkg/email"
	mock_email "github.com/nitt-hospital/backend/pkg/email/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWorkers(sender emailProvider.Sender) *Workers {
	services := service.NewServices(service.Deps{
		Config:      &config.Config{AppName: "NITT Hospital", OTP: config.OTPConfig{ExpiryMinutes: 5, MaxAttempts: 5}},
		Repos:       &repository.Repositories{},
		EmailSender: sender,
	})
	return NewWorkers(Deps{Services: services})
}

func TestNoticeSender_SendNotice(t *testing.T) {
	sender := new(mock_email.EmailSender)
	workers := newTestWorkers(sender)

	sender.On("Send", mock.Anything, mock.MatchedBy(func(inp emailProvider.SendEmailInput) bool {
		return inp.To == "asha@nitt.edu" && inp.Subject == "NITT Hospital - Welcome"
	})).Return(nil).Once()

	err := workers.NoticeSender.SendNotice(context.Background(), task.SendNotice{
		Email: "asha@nitt.edu",
		Name:  "Asha",
		Kind:  task.NoticeWelcome,
	})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestNoticeSender_SendNoticeError(t *testing.T) {
	sender := new(mock_email.EmailSender)
	workers := newTestWorkers(sender)
	cause := errors.New("smtp down")

	sender.On("Send", mock.Anything, mock.Anything).Return(cause).Once()

	err := workers.NoticeSender.SendNotice(context.Background(), task.SendNotice{
		Email: "asha@nitt.edu",
		Kind:  task.NoticePasswordChanged,
	})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "password_changed")
}
