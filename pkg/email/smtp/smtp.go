package smtp

import (
	"context"

	"github.com/nitt-hospital/backend/pkg/email"
	"github.com/nitt-hospital/backend/pkg/logger"

	"github.com/go-gomail/gomail"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type SMTPSender struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPSender(from, user, pass, host string, port int) (*SMTPSender, error) {
	if host == "" || port == 0 {
		return nil, errors.New("smtp host and port are required")
	}

	if user == "" || pass == "" {
		return nil, errors.New("smtp credentials are required")
	}

	if from == "" {
		from = user
	}

	d := gomail.NewDialer(host, port, user, pass)
	// port 465 is implicit TLS, everything else upgrades with STARTTLS
	d.SSL = port == 465

	return &SMTPSender{from: from, dialer: d}, nil
}

func (s *SMTPSender) Send(ctx context.Context, input email.SendEmailInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := input.Validate(); err != nil {
		return errors.Wrap(err, "invalid email input")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", input.To)
	msg.SetHeader("Subject", input.Subject)

	switch {
	case input.Text != "" && input.HTML != "":
		msg.SetBody("text/plain", input.Text)
		msg.AddAlternative("text/html", input.HTML)
	case input.HTML != "":
		msg.SetBody("text/html", input.HTML)
	default:
		msg.SetBody("text/plain", input.Text)
	}

	if err := s.dialer.DialAndSend(msg); err != nil {
		return errors.Wrapf(err, "smtp send to %s", input.To)
	}

	logger.Debug("email sent", zap.String("to", input.To), zap.String("subject", input.Subject))

	return nil
}
