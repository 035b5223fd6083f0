package email

import (
	"context"
	"errors"
)

type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender is the outbound mail transport.
type Sender interface {
	Send(ctx context.Context, input SendEmailInput) error
}

func (e *SendEmailInput) Validate() error {
	if e.To == "" {
		return errors.New("empty to")
	}

	if e.Subject == "" || (e.HTML == "" && e.Text == "") {
		return errors.New("empty subject/body")
	}

	if !IsEmailValid(e.To) {
		return errors.New("invalid to email")
	}

	return nil
}
