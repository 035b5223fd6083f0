package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/internal/domain"
	"github.com/nitt-hospital/backend/internal/repository"
	"github.com/nitt-hospital/backend/pkg/clock"
	"github.com/nitt-hospital/backend/pkg/email"
	"github.com/nitt-hospital/backend/pkg/hash"
	"github.com/nitt-hospital/backend/pkg/otp"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const (
	issueRetries      = 2
	issueRetryBackoff = 10 * time.Millisecond
)

type otpService struct {
	otpRepository repository.Otps
	generator     otp.Generator
	hasher        hash.CodeHasher
	clock         clock.Clock
	config        config.OTPConfig
}

func newOtpService(
	otpRepository repository.Otps,
	generator otp.Generator,
	hasher hash.CodeHasher,
	clock clock.Clock,
	config config.OTPConfig,
) *otpService {
	return &otpService{
		otpRepository: otpRepository,
		generator:     generator,
		hasher:        hasher,
		clock:         clock,
		config:        config,
	}
}

// Issue supersedes any outstanding code for address and stores a new one.
// The plaintext code is returned for delivery and is not kept anywhere else.
func (s *otpService) Issue(ctx context.Context, address string) (string, error) {
	address = email.Normalize(address)
	if address == "" {
		return "", ErrInvalidRequest
	}

	code, err := s.generator.Generate()
	if err != nil {
		return "", fmt.Errorf("generate otp failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate otp id failed: %w", err)
	}

	now := s.clock.Now()
	record := &domain.Otp{
		ID:        id,
		Email:     address,
		Code:      s.hasher.Hash(code),
		ExpiresAt: now.Add(s.config.Expiry()),
		CreatedAt: now,
	}

	// lock conflicts between concurrent issues for one address are retried
	backoff := retry.WithMaxRetries(issueRetries, retry.NewConstant(issueRetryBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.otpRepository.Issue(ctx, record)
		if errors.Is(err, domain.ErrConflict) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("store otp failed: %w", err)
	}

	return code, nil
}

// Verify checks code against the latest active record for address.
// Order matters: expiry and the attempt budget are checked before the
// digest comparison, and only a mismatch spends an attempt.
func (s *otpService) Verify(ctx context.Context, address string, code string) error {
	address = email.Normalize(address)

	record, err := s.otpRepository.GetLatestActiveByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("get active otp failed: %w", err)
	}

	if record.IsExpired(s.clock.Now()) {
		return ErrCodeExpired
	}

	if record.AttemptsExhausted(s.config.MaxAttempts) {
		return ErrTooManyAttempts
	}

	if !s.hasher.Equal(record.Code, code) {
		err := s.otpRepository.IncrementAttempts(ctx, record.ID, s.config.MaxAttempts)
		if err != nil && !errors.Is(err, domain.ErrNoRowsAffected) {
			return fmt.Errorf("increment otp attempts failed: %w", err)
		}
		return ErrInvalidCode
	}

	if err := s.otpRepository.MarkUsed(ctx, record.ID); err != nil {
		// another request consumed the code first
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrInvalidCode
		}
		return fmt.Errorf("mark otp used failed: %w", err)
	}

	return nil
}

func (s *otpService) GetAll(ctx context.Context) ([]domain.Otp, error) {
	return s.otpRepository.GetAll(ctx)
}

func (s *otpService) CreateManual(ctx context.Context, address string) (string, error) {
	return s.Issue(ctx, address)
}

func (s *otpService) MarkUsed(ctx context.Context, id uuid.UUID) (*domain.Otp, error) {
	record, err := s.getOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.otpRepository.MarkUsed(ctx, id); err != nil && !errors.Is(err, domain.ErrNoRowsAffected) {
		return nil, fmt.Errorf("mark otp used failed: %w", err)
	}

	record.Used = true

	return record, nil
}

func (s *otpService) DeleteOne(ctx context.Context, id uuid.UUID) (*domain.Otp, error) {
	record, err := s.getOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.otpRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return nil, ErrOtpNotFound
		}
		return nil, fmt.Errorf("delete otp failed: %w", err)
	}

	return record, nil
}

// DeleteExpired purges every record past its expiry, used or not.
func (s *otpService) DeleteExpired(ctx context.Context) (int64, error) {
	return s.otpRepository.DeleteExpired(ctx, s.clock.Now())
}

func (s *otpService) getOne(ctx context.Context, id uuid.UUID) (*domain.Otp, error) {
	record, err := s.otpRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrOtpNotFound
		}
		return nil, fmt.Errorf("get otp failed: %w", err)
	}
	return record, nil
}
