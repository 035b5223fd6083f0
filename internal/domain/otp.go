package domain

import (
	"time"

	"github.com/google/uuid"
)

// Otp is one issued email verification code. Code holds the digest, never
// the plaintext. Records are kept after use for audit and only removed by
// the expired purge or an explicit delete.
type Otp struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Code      string    `db:"code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Used      bool      `db:"used" json:"used"`
	Attempts  int       `db:"attempts" json:"attempts"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsExpired reports whether the code is no longer valid at now.
// A code is invalid at or after ExpiresAt.
func (o *Otp) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

func (o *Otp) AttemptsExhausted(max int) bool {
	return o.Attempts >= max
}
