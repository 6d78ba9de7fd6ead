package services

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "github.com/gastropro/backoffice/pkg/errors"
)

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// uniqueViolation reports whether err is a uniqueness violation raised by one
// of the supported drivers. Foreign key and check constraint failures do not match.
func uniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil {
		return pgErr.Code == pgUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr != nil {
		return myErr.Number == mysqlDuplicateEntry
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// translateWriteError turns a uniqueness violation into a client error with
// duplicateMessage and wraps anything else with op.
func translateWriteError(op string, err error, duplicateMessage string) error {
	if err == nil {
		return nil
	}
	if uniqueViolation(err) {
		return apperrors.NewBadRequest(duplicateMessage).WithInternal(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
