package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nitt-hospital/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type staffRepository struct {
	db *sqlx.DB
}

func newStaffRepository(db *sqlx.DB) *staffRepository {
	return &staffRepository{
		db: db,
	}
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	const query = `
	SELECT id, name, email, password, role, is_active, created_at, updated_at, deleted_at
	FROM staff WHERE LOWER(email) = LOWER(?) AND deleted_at IS NULL;
	`
	var staff domain.Staff
	if err := r.db.GetContext(ctx, &staff, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from staff by email failed: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	const query = `
	SELECT id, name, email, password, role, is_active, created_at, updated_at, deleted_at
	FROM staff WHERE id = uuid_to_bin(?) AND deleted_at IS NULL;
	`
	var staff domain.Staff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from staff by id failed: %w", err)
	}
	return &staff, nil
}
