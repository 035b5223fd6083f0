package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestErrorNumber(t *testing.T) {
	dup := &mysql.MySQLError{Number: DuplicateEntry, Message: "Duplicate entry"}

	assert.Equal(t, uint16(DuplicateEntry), ErrorNumber(dup))
	assert.Equal(t, uint16(DuplicateEntry), ErrorNumber(fmt.Errorf("insert: %w", dup)))
	assert.Equal(t, uint16(0), ErrorNumber(errors.New("boom")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&mysql.MySQLError{Number: Deadlock}))
	assert.True(t, IsRetryable(fmt.Errorf("tx: %w", &mysql.MySQLError{Number: LockWaitTimeout})))
	assert.False(t, IsRetryable(&mysql.MySQLError{Number: DuplicateEntry}))
	assert.False(t, IsRetryable(nil))
}
