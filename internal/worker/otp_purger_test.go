package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type deleterFunc func(ctx context.Context) (int64, error)

func (f deleterFunc) DeleteExpired(ctx context.Context) (int64, error) {
	return f(ctx)
}

func TestOtpPurger_PurgeExpired(t *testing.T) {
	calls := 0
	p := newOtpPurger(deleterFunc(func(context.Context) (int64, error) {
		calls++
		return 4, nil
	}))

	assert.NoError(t, p.PurgeExpired(context.Background()))
	assert.Equal(t, 1, calls)

	cause := errors.New("db down")
	p = newOtpPurger(deleterFunc(func(context.Context) (int64, error) {
		return 0, cause
	}))
	assert.ErrorIs(t, p.PurgeExpired(context.Background()), cause)
}
