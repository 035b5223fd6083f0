package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OTPConfig
		wantErr string
	}{
		{name: "defaults", cfg: OTPConfig{ExpiryMinutes: 5, MaxAttempts: 5}},
		{name: "zero expiry", cfg: OTPConfig{ExpiryMinutes: 0, MaxAttempts: 5}, wantErr: "OTP_EXPIRY_MINUTES"},
		{name: "negative expiry", cfg: OTPConfig{ExpiryMinutes: -1, MaxAttempts: 5}, wantErr: "OTP_EXPIRY_MINUTES"},
		{name: "zero attempts", cfg: OTPConfig{ExpiryMinutes: 5, MaxAttempts: 0}, wantErr: "OTP_MAX_ATTEMPTS"},
		{name: "negative cooldown", cfg: OTPConfig{ExpiryMinutes: 5, MaxAttempts: 5, ResendCooldown: -time.Second}, wantErr: "OTP_RESEND_COOLDOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	err := OTPConfig{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTP_EXPIRY_MINUTES")
	assert.Contains(t, err.Error(), "OTP_MAX_ATTEMPTS")
}

func TestRedisRequired(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.RedisRequired())

	cfg.OTP.ResendCooldown = time.Minute
	assert.True(t, cfg.RedisRequired())

	cfg.OTP.ResendCooldown = 0
	cfg.Queue.Enabled = true
	assert.True(t, cfg.RedisRequired())
}
