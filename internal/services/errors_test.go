package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/gastropro/backoffice/pkg/errors"
)

func TestUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm duplicated key", err: fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "postgres unique", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "postgres foreign key", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "mysql duplicate entry", err: &mysql.MySQLError{Number: 1062}, want: true},
		{name: "mysql foreign key", err: &mysql.MySQLError{Number: 1452}, want: false},
		{name: "sqlite unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, want: true},
		{name: "sqlite foreign key", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, want: false},
		{name: "message only", err: errors.New("unique constraint violated"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, uniqueViolation(tc.err))
		})
	}
}

func TestTranslateWriteError(t *testing.T) {
	require.NoError(t, translateWriteError("op", nil, "duplicate"))

	dup := translateWriteError("op", gorm.ErrDuplicatedKey, "Already exists")
	require.ErrorIs(t, dup, apperrors.ErrBadRequest)
	var appErr *apperrors.AppError
	require.ErrorAs(t, dup, &appErr)
	require.Equal(t, "Already exists", appErr.Message)

	boom := errors.New("disk full")
	other := translateWriteError("staff service: create", boom, "Already exists")
	require.ErrorIs(t, other, boom)
	require.NotErrorIs(t, other, apperrors.ErrBadRequest)
	require.Equal(t, "staff service: create: disk full", other.Error())
}
