//go:build unit

package db

import (
	"testing"

	"equipsched/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{
			name:      "serialization failure",
			err:       &pgconn.PgError{Code: "40001"},
			retryable: true,
		},
		{
			name:      "deadlock detected",
			err:       &pgconn.PgError{Code: "40P01"},
			retryable: true,
		},
		{
			name:      "wrapped serialization failure",
			err:       errs.Wrap(&pgconn.PgError{Code: "40001"}, "failed to update schedule"),
			retryable: true,
		},
		{
			name:      "exclusion violation is not retryable",
			err:       &pgconn.PgError{Code: "23P01"},
			retryable: false,
		},
		{
			name:      "plain error",
			err:       errs.New("connection refused"),
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableError(tt.err))
		})
	}
}
