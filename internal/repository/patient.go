package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nitt-hospital/backend/internal/db"
	"github.com/nitt-hospital/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const patientColumns = `id, name, email, identifier, type, gender, department, address, profile_image, password, is_active, created_at, updated_at, deleted_at`

type patientRepository struct {
	db *sqlx.DB
}

func newPatientRepository(db *sqlx.DB) *patientRepository {
	return &patientRepository{
		db: db,
	}
}

func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	const query = `
	INSERT INTO patient
	(id, name, email, identifier, type, gender, department, address, profile_image, password, is_active)
	VALUES(uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.Name,
		patient.Email,
		patient.Identifier,
		patient.Type,
		patient.Gender,
		patient.Department,
		patient.Address,
		patient.ProfileImage,
		patient.Password,
		patient.IsActive,
	)
	if err != nil {
		if db.ErrorNumber(err) == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert patient: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

// GetByEmail matches case-insensitively and skips soft-deleted rows.
func (r *patientRepository) GetByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	const query = `SELECT ` + patientColumns + ` FROM patient WHERE LOWER(email) = LOWER(?) AND deleted_at IS NULL`

	return r.getOne(ctx, query, email)
}

func (r *patientRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Patient, error) {
	const query = `SELECT ` + patientColumns + ` FROM patient WHERE identifier = ? AND deleted_at IS NULL`

	return r.getOne(ctx, query, identifier)
}

func (r *patientRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	const query = `SELECT ` + patientColumns + ` FROM patient WHERE id = uuid_to_bin(?) AND deleted_at IS NULL`

	return r.getOne(ctx, query, id)
}

func (r *patientRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `UPDATE patient SET password = ?, updated_at = now() WHERE id = uuid_to_bin(?) AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update patient password failed: %w", err)
	}

	return expectOneRow("repository.patient.UpdatePassword", res)
}

func (r *patientRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Patient, error) {
	var patient domain.Patient
	if err := r.db.GetContext(ctx, &patient, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from patient failed: %w", err)
	}
	return &patient, nil
}
