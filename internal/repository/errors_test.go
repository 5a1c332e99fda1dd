package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"plain error passes through", boom, boom},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_pa_client_event"}, ErrAlreadyExists},
		{"wrapped unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), ErrAlreadyExists},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, ErrConflict},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "games_distinct_teams"}, ErrConflict},
		{"bad enum literal", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapPgError(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	other := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	assert.Same(t, other, MapPgError(other))

	named := MapPgError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_lineup_slot"})
	assert.Contains(t, named.Error(), "uq_lineup_slot")
}
