package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nitt-hospital/backend/internal/db"
	"github.com/nitt-hospital/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const otpColumns = `id, email, code, expires_at, used, attempts, created_at`

type otpRepository struct {
	db *sqlx.DB
}

func newOtpRepository(db *sqlx.DB) *otpRepository {
	return &otpRepository{
		db: db,
	}
}

// Issue supersedes every active code for otp.Email and inserts otp in one
// transaction. The email's rows are locked first so concurrent issues for the
// same address serialize instead of both leaving an active row.
func (r *otpRepository) Issue(ctx context.Context, otp *domain.Otp) error {
	const op = "repository.otp.Issue"

	const lockQuery = `SELECT id FROM email_otp WHERE email = ? FOR UPDATE`

	const supersedeQuery = `UPDATE email_otp SET used = TRUE WHERE email = ? AND used = FALSE`

	const insertQuery = `
	INSERT INTO email_otp (id, email, code, expires_at, used, attempts, created_at)
	VALUES (uuid_to_bin(:id), :email, :code, :expires_at, :used, :attempts, :created_at)
	`

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked [][]byte
		if err := tx.SelectContext(ctx, &locked, lockQuery, otp.Email); err != nil {
			return fmt.Errorf("lock email rows failed: %w", err)
		}

		if _, err := tx.ExecContext(ctx, supersedeQuery, otp.Email); err != nil {
			return fmt.Errorf("supersede active otps failed: %w", err)
		}

		res, err := tx.NamedExecContext(ctx, insertQuery, otp)
		if err != nil {
			return fmt.Errorf("insert otp failed: %w", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected failed: %w", err)
		}

		if rows != 1 {
			return fmt.Errorf("expected 1 row affected, got %d", rows)
		}

		return nil
	})
	if err != nil {
		if db.IsRetryable(err) {
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *otpRepository) GetLatestActiveByEmail(ctx context.Context, email string) (*domain.Otp, error) {
	const op = "repository.otp.GetLatestActiveByEmail"

	const query = `
	SELECT ` + otpColumns + `
	FROM email_otp
	WHERE email = ? AND used = FALSE
	ORDER BY created_at DESC, id DESC
	LIMIT 1
	`

	var otp domain.Otp
	if err := r.db.GetContext(ctx, &otp, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select otp failed: %w", op, err)
	}

	return &otp, nil
}

func (r *otpRepository) GetAll(ctx context.Context) ([]domain.Otp, error) {
	const op = "repository.otp.GetAll"

	const query = `SELECT ` + otpColumns + ` FROM email_otp ORDER BY created_at DESC, id DESC`

	otps := []domain.Otp{}
	if err := r.db.SelectContext(ctx, &otps, query); err != nil {
		return nil, fmt.Errorf("%s: select otps failed: %w", op, err)
	}

	return otps, nil
}

func (r *otpRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Otp, error) {
	const op = "repository.otp.GetOneByID"

	const query = `SELECT ` + otpColumns + ` FROM email_otp WHERE id = uuid_to_bin(?)`

	var otp domain.Otp
	if err := r.db.GetContext(ctx, &otp, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select otp failed: %w", op, err)
	}

	return &otp, nil
}

// MarkUsed flips used on an active code. It returns domain.ErrNoRowsAffected
// when the row is missing or already used.
func (r *otpRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	const op = "repository.otp.MarkUsed"

	const query = `UPDATE email_otp SET used = TRUE WHERE id = uuid_to_bin(?) AND used = FALSE`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: update otp failed: %w", op, err)
	}

	return expectOneRow(op, res)
}

// IncrementAttempts adds one failed attempt unless the budget is already spent.
func (r *otpRepository) IncrementAttempts(ctx context.Context, id uuid.UUID, max int) error {
	const op = "repository.otp.IncrementAttempts"

	const query = `UPDATE email_otp SET attempts = attempts + 1 WHERE id = uuid_to_bin(?) AND attempts < ?`

	res, err := r.db.ExecContext(ctx, query, id, max)
	if err != nil {
		return fmt.Errorf("%s: update otp failed: %w", op, err)
	}

	return expectOneRow(op, res)
}

func (r *otpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.otp.Delete"

	const query = `DELETE FROM email_otp WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: delete otp failed: %w", op, err)
	}

	return expectOneRow(op, res)
}

func (r *otpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "repository.otp.DeleteExpired"

	const query = `DELETE FROM email_otp WHERE expires_at < ?`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("%s: delete expired otps failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}

func expectOneRow(op string, res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
