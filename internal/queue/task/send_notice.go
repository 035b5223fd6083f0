package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendNoticeTaskName  = "sendNoticeTask"
	SendNoticeQueueName = "sendNoticeQueue"
)

type NoticeKind string

const (
	NoticeWelcome         NoticeKind = "welcome"
	NoticePasswordChanged NoticeKind = "password_changed"
)

// SendNotice is an informational email that follows a finished auth flow.
// It never carries an otp.
type SendNotice struct {
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Kind  NoticeKind `json:"kind"`
}

func NewSendNoticeTask(notice SendNotice) (*asynq.Task, error) {
	payload, err := json.Marshal(notice)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendNoticeTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendNoticeQueueName),
	), nil
}
