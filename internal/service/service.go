package service

import (
	"context"

	"github.com/nitt-hospital/backend/internal/cache"
	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/internal/domain"
	"github.com/nitt-hospital/backend/internal/queue/task"
	"github.com/nitt-hospital/backend/internal/repository"
	"github.com/nitt-hospital/backend/pkg/auth"
	"github.com/nitt-hospital/backend/pkg/clock"
	emailProvider "github.com/nitt-hospital/backend/pkg/email"
	"github.com/nitt-hospital/backend/pkg/hash"
	"github.com/nitt-hospital/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	Otps             Otps
	OtpNotifications OtpNotifications
	PatientAuth      PatientAuth
	StaffAuth        StaffAuth
	Emails           *EmailService
}

type Deps struct {
	Config         *config.Config
	Repos          *repository.Repositories
	PasswordHasher hash.PasswordHasher
	CodeHasher     hash.CodeHasher
	OtpGenerator   otp.Generator
	TokenManager   auth.TokenManager
	EmailSender    emailProvider.Sender
	// Cooldown defaults to cache.NoopCooldown.
	Cooldown cache.Cooldown
	// Notices defaults to sending notices inline through EmailSender.
	Notices NoticeQueue
	Clock   clock.Clock
}

func NewServices(deps Deps) *Services {
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Cooldown == nil {
		deps.Cooldown = cache.NoopCooldown{}
	}

	emails := newEmailService(deps.EmailSender, deps.Clock, deps.Config.AppName, deps.Config.OTP.ExpiryMinutes)
	if deps.Notices == nil {
		deps.Notices = emails
	}

	otps := newOtpService(deps.Repos.Otps, deps.OtpGenerator, deps.CodeHasher, deps.Clock, deps.Config.OTP)
	notifications := newOtpNotificationService(otps, emails, deps.Cooldown, deps.Config.OTP)

	return &Services{
		Otps:             otps,
		OtpNotifications: notifications,
		PatientAuth: newPatientAuthService(
			deps.Repos.Patients,
			notifications,
			deps.PasswordHasher,
			deps.TokenManager,
			deps.Notices,
			deps.Clock,
		),
		StaffAuth: newStaffAuthService(deps.Repos.Staff, deps.PasswordHasher, deps.TokenManager),
		Emails:    emails,
	}
}

type Otps interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email string, code string) error
	GetAll(ctx context.Context) ([]domain.Otp, error)
	CreateManual(ctx context.Context, email string) (string, error)
	MarkUsed(ctx context.Context, id uuid.UUID) (*domain.Otp, error)
	DeleteOne(ctx context.Context, id uuid.UUID) (*domain.Otp, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type OtpNotifications interface {
	SendOtpEmail(ctx context.Context, email string, action string) error
	VerifyOtp(ctx context.Context, email string, code string) error
}

type PatientAuth interface {
	RequestRegistrationOtp(ctx context.Context, email string, identifier string) error
	VerifyAndRegister(ctx context.Context, input RegisterPatientInput) (*domain.Patient, error)
	Login(ctx context.Context, email string, password string) (*PatientLogin, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	GetMe(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
}

type StaffAuth interface {
	Login(ctx context.Context, email string, password string) (*StaffLogin, error)
	GetMe(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
}

// NoticeQueue accepts post-flow notices. Delivery is best effort.
type NoticeQueue interface {
	EnqueueNotice(ctx context.Context, notice task.SendNotice) error
}
