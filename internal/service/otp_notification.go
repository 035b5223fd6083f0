package service

import (
	"context"

	"github.com/nitt-hospital/backend/internal/cache"
	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/pkg/email"
	"github.com/nitt-hospital/backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	ActionPatientRegistration = "Patient Registration"
	ActionPasswordReset       = "Password Reset"
)

type otpNotificationService struct {
	otps     Otps
	emails   *EmailService
	cooldown cache.Cooldown
	config   config.OTPConfig
}

func newOtpNotificationService(otps Otps, emails *EmailService, cooldown cache.Cooldown, config config.OTPConfig) *otpNotificationService {
	return &otpNotificationService{
		otps:     otps,
		emails:   emails,
		cooldown: cooldown,
		config:   config,
	}
}

// SendOtpEmail issues a fresh code for address and mails it. When mailing
// fails the issued code stays active.
func (s *otpNotificationService) SendOtpEmail(ctx context.Context, address string, action string) error {
	address = email.Normalize(address)

	acquired, err := s.acquireCooldown(ctx, address)
	if err != nil {
		return err
	}

	logger.Info("generating otp", zap.String("email", address), zap.String("action", action))

	code, err := s.otps.Issue(ctx, address)
	if err != nil {
		s.releaseCooldown(ctx, address, acquired)
		return err
	}

	if err := s.emails.SendOtpEmail(ctx, address, code, action); err != nil {
		logger.Error("send otp email failed", zap.String("email", address), zap.Error(err))
		s.releaseCooldown(ctx, address, acquired)
		return &DispatchError{Err: err}
	}

	logger.Info("otp email sent", zap.String("email", address))

	return nil
}

// acquireCooldown reports whether a cooldown was started for address.
// A failing cooldown store lets the request through.
func (s *otpNotificationService) acquireCooldown(ctx context.Context, address string) (bool, error) {
	if s.config.ResendCooldown <= 0 {
		return false, nil
	}

	ok, err := s.cooldown.Acquire(ctx, address, s.config.ResendCooldown)
	if err != nil {
		logger.Warn("otp resend cooldown check failed", zap.String("email", address), zap.Error(err))
		return false, nil
	}
	if !ok {
		return false, ErrResendTooSoon
	}

	return true, nil
}

// releaseCooldown lets the caller retry right away after a failed send.
func (s *otpNotificationService) releaseCooldown(ctx context.Context, address string, acquired bool) {
	if !acquired {
		return
	}
	if err := s.cooldown.Release(context.WithoutCancel(ctx), address); err != nil {
		logger.Warn("otp resend cooldown release failed", zap.String("email", address), zap.Error(err))
	}
}

func (s *otpNotificationService) VerifyOtp(ctx context.Context, address string, code string) error {
	return s.otps.Verify(ctx, address, code)
}
