package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,otpcode"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	Register(v)

	require.NoError(t, v.Struct(verifyRequest{Email: "a@x.com", Otp: "482913"}))

	err := v.Struct(verifyRequest{Email: "a@x.com", Otp: "48291"})
	var verr validator.ValidationErrors
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr, 1)
	assert.Equal(t, "otp", verr[0].Field())
	assert.Equal(t, "otpcode", verr[0].Tag())

	assert.Error(t, v.Struct(verifyRequest{Email: "a@x.com", Otp: "48a913"}))
}
