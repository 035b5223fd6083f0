package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nitt-hospital/backend/internal/domain"
	"github.com/nitt-hospital/backend/internal/queue/task"
	"github.com/nitt-hospital/backend/internal/repository"
	"github.com/nitt-hospital/backend/pkg/auth"
	"github.com/nitt-hospital/backend/pkg/clock"
	"github.com/nitt-hospital/backend/pkg/email"
	"github.com/nitt-hospital/backend/pkg/hash"
	"github.com/nitt-hospital/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RegisterPatientInput struct {
	Name         string
	Email        string
	Password     string
	Identifier   string
	Type         domain.PatientType
	Gender       domain.Gender
	Department   string
	Address      string
	ProfileImage string
	Otp          string
}

type ResetPasswordInput struct {
	Email       string
	Otp         string
	NewPassword string
}

type PatientLogin struct {
	AccessToken string
	ExpiresIn   time.Duration
	Patient     *domain.Patient
}

type patientAuthService struct {
	patients      repository.Patients
	notifications OtpNotifications
	hasher        hash.PasswordHasher
	tokenManager  auth.TokenManager
	notices       NoticeQueue
	clock         clock.Clock
}

func newPatientAuthService(
	patients repository.Patients,
	notifications OtpNotifications,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	notices NoticeQueue,
	clock clock.Clock,
) *patientAuthService {
	return &patientAuthService{
		patients:      patients,
		notifications: notifications,
		hasher:        hasher,
		tokenManager:  tokenManager,
		notices:       notices,
		clock:         clock,
	}
}

func (s *patientAuthService) RequestRegistrationOtp(ctx context.Context, address string, identifier string) error {
	address = email.Normalize(address)

	exists, err := s.exists(ctx, address, identifier)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExist
	}

	return s.notifications.SendOtpEmail(ctx, address, ActionPatientRegistration)
}

func (s *patientAuthService) VerifyAndRegister(ctx context.Context, input RegisterPatientInput) (*domain.Patient, error) {
	input.Email = email.Normalize(input.Email)

	if err := s.notifications.VerifyOtp(ctx, input.Email, input.Otp); err != nil {
		return nil, err
	}

	exists, err := s.exists(ctx, input.Email, input.Identifier)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExist
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate patient id failed: %w", err)
	}

	now := s.clock.Now()
	patient := &domain.Patient{
		ID:           id,
		Name:         input.Name,
		Email:        input.Email,
		Identifier:   input.Identifier,
		Type:         input.Type,
		Gender:       input.Gender,
		Department:   nullString(input.Department),
		Address:      nullString(input.Address),
		ProfileImage: nullString(input.ProfileImage),
		Password:     passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrUserAlreadyExist
		}
		return nil, fmt.Errorf("create patient failed: %w", err)
	}

	logger.Info("patient registered", zap.String("patient_id", patient.ID.String()))

	s.notify(ctx, patient, task.NoticeWelcome)

	return patient, nil
}

func (s *patientAuthService) Login(ctx context.Context, address string, password string) (*PatientLogin, error) {
	patient, err := s.patients.GetByEmail(ctx, email.Normalize(address))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get patient failed: %w", err)
	}

	if !patient.IsActive || !s.hasher.Verify(password, patient.Password) {
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := s.tokenManager.NewJWT(auth.Principal{
		ID:    patient.ID.String(),
		Email: patient.Email,
		Role:  string(domain.RolePatient),
		Type:  auth.SubjectPatient,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token failed: %w", err)
	}

	return &PatientLogin{AccessToken: token, ExpiresIn: ttl, Patient: patient}, nil
}

// ForgotPassword reports success for unknown addresses too.
func (s *patientAuthService) ForgotPassword(ctx context.Context, address string) error {
	address = email.Normalize(address)

	_, err := s.patients.GetByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get patient failed: %w", err)
	}

	return s.notifications.SendOtpEmail(ctx, address, ActionPasswordReset)
}

func (s *patientAuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	address := email.Normalize(input.Email)

	patient, err := s.patients.GetByEmail(ctx, address)
	if err != nil {
		// unknown addresses fail like a wrong code
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("get patient failed: %w", err)
	}

	if err := s.notifications.VerifyOtp(ctx, address, input.Otp); err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	if err := s.patients.UpdatePassword(ctx, patient.ID, passwordHash); err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}

	s.notify(ctx, patient, task.NoticePasswordChanged)

	return nil
}

func (s *patientAuthService) GetMe(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	patient, err := s.patients.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("get patient failed: %w", err)
	}

	if !patient.IsActive {
		return nil, ErrUnauthorized
	}

	return patient, nil
}

func (s *patientAuthService) exists(ctx context.Context, address string, identifier string) (bool, error) {
	_, err := s.patients.GetByEmail(ctx, address)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("get patient by email failed: %w", err)
	}

	_, err = s.patients.GetByIdentifier(ctx, identifier)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("get patient by identifier failed: %w", err)
	}

	return false, nil
}

func (s *patientAuthService) notify(ctx context.Context, patient *domain.Patient, kind task.NoticeKind) {
	notice := task.SendNotice{Email: patient.Email, Name: patient.Name, Kind: kind}
	if err := s.notices.EnqueueNotice(ctx, notice); err != nil {
		logger.Warn("enqueue notice failed",
			zap.String("patient_id", patient.ID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
