package service

import (
	"context"
	"embed"
	"fmt"
	"regexp"
	"strconv"

	"github.com/nitt-hospital/backend/internal/queue/task"
	"github.com/nitt-hospital/backend/pkg/clock"
	emailProvider "github.com/nitt-hospital/backend/pkg/email"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	otpHTMLTemplate         = mustReadTemplate("otp.html.tmpl")
	otpTextTemplate         = mustReadTemplate("otp.txt.tmpl")
	welcomeTemplate         = mustReadTemplate("welcome.txt.tmpl")
	passwordChangedTemplate = mustReadTemplate("password_changed.txt.tmpl")
)

var templateToken = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

func mustReadTemplate(name string) string {
	b, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("read email template %s: %s", name, err))
	}
	return string(b)
}

// RenderTemplate replaces every {{name}} token with vars[name].
// Tokens without a value are left untouched.
func RenderTemplate(tmpl string, vars map[string]string) string {
	return templateToken.ReplaceAllStringFunc(tmpl, func(token string) string {
		name := templateToken.FindStringSubmatch(token)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return token
	})
}

type EmailService struct {
	sender        emailProvider.Sender
	clock         clock.Clock
	appName       string
	expiryMinutes int
}

func newEmailService(sender emailProvider.Sender, clock clock.Clock, appName string, expiryMinutes int) *EmailService {
	return &EmailService{
		sender:        sender,
		clock:         clock,
		appName:       appName,
		expiryMinutes: expiryMinutes,
	}
}

func (s *EmailService) SendOtpEmail(ctx context.Context, to string, code string, action string) error {
	vars := map[string]string{
		"appName":       s.appName,
		"action":        action,
		"otp":           code,
		"expiryMinutes": strconv.Itoa(s.expiryMinutes),
		"year":          strconv.Itoa(s.clock.Now().Year()),
	}

	return s.sender.Send(ctx, emailProvider.SendEmailInput{
		To:      to,
		Subject: s.appName + " - Verification Code",
		HTML:    RenderTemplate(otpHTMLTemplate, vars),
		Text:    RenderTemplate(otpTextTemplate, vars),
	})
}

func (s *EmailService) SendNotice(ctx context.Context, notice task.SendNotice) error {
	var subject, tmpl string
	switch notice.Kind {
	case task.NoticeWelcome:
		subject, tmpl = s.appName+" - Welcome", welcomeTemplate
	case task.NoticePasswordChanged:
		subject, tmpl = s.appName+" - Password Changed", passwordChangedTemplate
	default:
		return fmt.Errorf("unknown notice kind %q", notice.Kind)
	}

	vars := map[string]string{
		"appName": s.appName,
		"name":    notice.Name,
		"email":   notice.Email,
		"year":    strconv.Itoa(s.clock.Now().Year()),
	}

	return s.sender.Send(ctx, emailProvider.SendEmailInput{
		To:      notice.Email,
		Subject: subject,
		Text:    RenderTemplate(tmpl, vars),
	})
}

// EnqueueNotice sends the notice inline. It is used when no queue is configured.
func (s *EmailService) EnqueueNotice(ctx context.Context, notice task.SendNotice) error {
	return s.SendNotice(ctx, notice)
}
