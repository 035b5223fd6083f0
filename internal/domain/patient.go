package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PatientType string

const (
	PatientStudent PatientType = "STUDENT"
	PatientFaculty PatientType = "FACULTY"
	PatientStaff   PatientType = "STAFF"
	PatientOther   PatientType = "OTHER"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type Patient struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	Identifier   string         `db:"identifier" json:"identifier"`
	Type         PatientType    `db:"type" json:"type"`
	Gender       Gender         `db:"gender" json:"gender"`
	Department   sql.NullString `db:"department" json:"department"`
	Address      sql.NullString `db:"address" json:"address"`
	ProfileImage sql.NullString `db:"profile_image" json:"profile_image"`
	Password     string         `db:"password" json:"-"`
	IsActive     bool           `db:"is_active" json:"is_active"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}
