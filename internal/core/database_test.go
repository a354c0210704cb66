// AngelaMos | 2026
// database_test.go

package core

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: sql.ErrNoRows, want: ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: ErrDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: ErrUnknownReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapStoreError("create subscription", tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.Contains(t, got.Error(), "create subscription")
		})
	}
}

func TestMapStoreErrorForeignKeyIsInvalidInput(t *testing.T) {
	err := MapStoreError("create subscription", &pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, IsForeignKeyError(err))
	assert.False(t, IsDuplicateKeyError(err))
}

func TestMapStoreErrorPassesThroughOthers(t *testing.T) {
	assert.NoError(t, MapStoreError("op", nil))

	cause := errors.New("connection reset")
	err := MapStoreError("op", cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}
