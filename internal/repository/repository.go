package repository

import (
	"context"
	"time"

	"github.com/nitt-hospital/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Otps     Otps
	Patients Patients
	Staff    Staff
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Otps:     newOtpRepository(db),
		Patients: newPatientRepository(db),
		Staff:    newStaffRepository(db),
	}
}

type Otps interface {
	Issue(ctx context.Context, otp *domain.Otp) error
	GetLatestActiveByEmail(ctx context.Context, email string) (*domain.Otp, error)
	GetAll(ctx context.Context) ([]domain.Otp, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Otp, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	IncrementAttempts(ctx context.Context, id uuid.UUID, max int) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Patients interface {
	Create(ctx context.Context, patient *domain.Patient) error
	GetByEmail(ctx context.Context, email string) (*domain.Patient, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Patient, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type Staff interface {
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
}
