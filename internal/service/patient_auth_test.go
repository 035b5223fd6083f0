package service

import (
	"context"
	"testing"
	"time"

	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/internal/domain"
	"github.com/nitt-hospital/backend/internal/queue/task"
	"github.com/nitt-hospital/backend/internal/repository"
	"github.com/nitt-hospital/backend/pkg/auth"
	emailProvider "github.com/nitt-hospital/backend/pkg/email"
	mock_email "github.com/nitt-hospital/backend/pkg/email/mock"
	"github.com/nitt-hospital/backend/pkg/hash"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	services *Services
	otps     *memoryOtps
	patients *memoryPatients
	staff    *memoryStaff
	sender   *mock_email.EmailSender
	notices  *recordingNotices
	tokens   *auth.Manager
	hasher   *hash.BcryptHasher
}

func newTestEnv(t *testing.T, patients ...*domain.Patient) *testEnv {
	t.Helper()

	cfg := &config.Config{AppName: "NITT Hospital", OTP: testOTPConfig}
	tokens, err := auth.NewManager(config.JWTConfig{AccessTokenTTL: 15 * time.Minute, SigningKey: "test-secret"})
	require.NoError(t, err)

	env := &testEnv{
		otps:     &memoryOtps{},
		patients: newMemoryPatients(patients...),
		staff:    &memoryStaff{},
		sender:   new(mock_email.EmailSender),
		notices:  &recordingNotices{},
		tokens:   tokens,
		hasher:   hash.NewBcryptHasher(),
	}

	env.services = NewServices(Deps{
		Config: cfg,
		Repos: &repository.Repositories{
			Otps:     env.otps,
			Patients: env.patients,
			Staff:    env.staff,
		},
		PasswordHasher: env.hasher,
		CodeHasher:     hash.NewSHA256CodeHasher(),
		OtpGenerator:   &sequenceGenerator{codes: []string{"482913"}},
		TokenManager:   tokens,
		EmailSender:    env.sender,
		Notices:        env.notices,
		Clock:          newFakeClock(),
	})

	return env
}

func (e *testEnv) newPatient(t *testing.T, address, password string) *domain.Patient {
	t.Helper()
	passwordHash, err := e.hasher.Hash(password)
	require.NoError(t, err)
	return &domain.Patient{
		ID:         uuid.New(),
		Name:       "Asha",
		Email:      address,
		Identifier: "106121001",
		Type:       domain.PatientStudent,
		Gender:     domain.GenderFemale,
		Password:   passwordHash,
		IsActive:   true,
	}
}

func registerInput() RegisterPatientInput {
	return RegisterPatientInput{
		Name:       "Asha",
		Email:      "Asha@NITT.edu",
		Password:   "s3cret-pass",
		Identifier: "106121001",
		Type:       domain.PatientStudent,
		Gender:     domain.GenderFemale,
		Department: "CSE",
		Otp:        "482913",
	}
}

func TestPatientAuth_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.sender.On("Send", mock.Anything, mock.MatchedBy(func(inp emailProvider.SendEmailInput) bool {
		return inp.To == "asha@nitt.edu"
	})).Return(nil).Once()

	require.NoError(t, env.services.PatientAuth.RequestRegistrationOtp(ctx, "Asha@NITT.edu", "106121001"))

	patient, err := env.services.PatientAuth.VerifyAndRegister(ctx, registerInput())
	require.NoError(t, err)
	assert.Equal(t, "asha@nitt.edu", patient.Email)
	assert.True(t, patient.IsActive)
	assert.True(t, patient.Department.Valid)
	assert.False(t, patient.Address.Valid)
	assert.True(t, env.hasher.Verify("s3cret-pass", patient.Password))

	require.Len(t, env.notices.notices, 1)
	assert.Equal(t, task.NoticeWelcome, env.notices.notices[0].Kind)

	// the code was consumed
	_, err = env.services.PatientAuth.VerifyAndRegister(ctx, registerInput())
	assert.ErrorIs(t, err, ErrInvalidCode)
	env.sender.AssertExpectations(t)
}

func TestPatientAuth_RequestRegistrationOtpExisting(t *testing.T) {
	env := newTestEnv(t)
	existing := env.newPatient(t, "asha@nitt.edu", "password1")
	require.NoError(t, env.patients.Create(context.Background(), existing))

	err := env.services.PatientAuth.RequestRegistrationOtp(context.Background(), "ASHA@nitt.edu", "other")
	assert.ErrorIs(t, err, ErrUserAlreadyExist)

	err = env.services.PatientAuth.RequestRegistrationOtp(context.Background(), "new@nitt.edu", existing.Identifier)
	assert.ErrorIs(t, err, ErrUserAlreadyExist)

	env.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestPatientAuth_Login(t *testing.T) {
	env := newTestEnv(t)
	patient := env.newPatient(t, "asha@nitt.edu", "password1")
	inactive := env.newPatient(t, "old@nitt.edu", "password1")
	inactive.Identifier = "x"
	inactive.IsActive = false
	require.NoError(t, env.patients.Create(context.Background(), patient))
	require.NoError(t, env.patients.Create(context.Background(), inactive))

	res, err := env.services.PatientAuth.Login(context.Background(), " Asha@nitt.edu", "password1")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, res.ExpiresIn)

	principal, err := env.tokens.Parse(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, patient.ID.String(), principal.ID)
	assert.Equal(t, string(domain.RolePatient), principal.Role)
	assert.Equal(t, auth.SubjectPatient, principal.Type)

	_, err = env.services.PatientAuth.Login(context.Background(), "asha@nitt.edu", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.services.PatientAuth.Login(context.Background(), "nobody@nitt.edu", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.services.PatientAuth.Login(context.Background(), "old@nitt.edu", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPatientAuth_ForgotAndResetPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := env.newPatient(t, "asha@nitt.edu", "password1")
	require.NoError(t, env.patients.Create(ctx, patient))

	// unknown addresses look the same to the caller
	require.NoError(t, env.services.PatientAuth.ForgotPassword(ctx, "nobody@nitt.edu"))
	env.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)

	env.sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	require.NoError(t, env.services.PatientAuth.ForgotPassword(ctx, "asha@nitt.edu"))

	err := env.services.PatientAuth.ResetPassword(ctx, ResetPasswordInput{Email: "asha@nitt.edu", Otp: "000000", NewPassword: "new-password"})
	assert.ErrorIs(t, err, ErrInvalidCode)

	err = env.services.PatientAuth.ResetPassword(ctx, ResetPasswordInput{Email: "asha@nitt.edu", Otp: "482913", NewPassword: "new-password"})
	require.NoError(t, err)

	_, err = env.services.PatientAuth.Login(ctx, "asha@nitt.edu", "new-password")
	require.NoError(t, err)

	require.Len(t, env.notices.notices, 1)
	assert.Equal(t, task.NoticePasswordChanged, env.notices.notices[0].Kind)

	err = env.services.PatientAuth.ResetPassword(ctx, ResetPasswordInput{Email: "nobody@nitt.edu", Otp: "482913", NewPassword: "new-password"})
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestPatientAuth_GetMe(t *testing.T) {
	env := newTestEnv(t)
	patient := env.newPatient(t, "asha@nitt.edu", "password1")
	require.NoError(t, env.patients.Create(context.Background(), patient))

	got, err := env.services.PatientAuth.GetMe(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, patient.Email, got.Email)

	_, err = env.services.PatientAuth.GetMe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestStaffAuth(t *testing.T) {
	env := newTestEnv(t)
	passwordHash, err := env.hasher.Hash("staff-pass")
	require.NoError(t, err)
	staff := &domain.Staff{ID: uuid.New(), Name: "Dr. Rao", Email: "rao@nitt.edu", Password: passwordHash, Role: domain.RoleDoctor, IsActive: true}
	env.staff.staff = append(env.staff.staff, staff)

	res, err := env.services.StaffAuth.Login(context.Background(), "RAO@nitt.edu", "staff-pass")
	require.NoError(t, err)

	principal, err := env.tokens.Parse(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleDoctor), principal.Role)
	assert.Equal(t, auth.SubjectStaff, principal.Type)

	_, err = env.services.StaffAuth.Login(context.Background(), "rao@nitt.edu", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := env.services.StaffAuth.GetMe(context.Background(), staff.ID)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, got.ID)

	staff.IsActive = false
	_, err = env.services.StaffAuth.GetMe(context.Background(), staff.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
