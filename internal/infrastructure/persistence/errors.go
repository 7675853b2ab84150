package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the SQLSTATE postgres reports for a unique index conflict
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation.
// GORM translates driver errors to gorm.ErrDuplicatedKey when TranslateError is on;
// the pgconn check covers connections opened without it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
