package service

import "errors"

var (
	ErrUserAlreadyExist   = errors.New("user already exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnauthorized       = errors.New("unauthorized")

	// ErrInvalidCode covers both a missing active code and a wrong code.
	ErrInvalidCode     = errors.New("invalid otp")
	ErrCodeExpired     = errors.New("otp expired")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrOtpNotFound     = errors.New("otp not found")
	ErrResendTooSoon   = errors.New("otp requested too recently")
)

// DispatchError is returned when the mail transport failed to deliver an
// otp. Its message never includes the transport error.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return "failed to send otp"
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
