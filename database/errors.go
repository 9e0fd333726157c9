package database

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// translate keeps gorm's sentinels visible to callers and maps unique
// violations onto gorm.ErrDuplicatedKey.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Wrap(gorm.ErrDuplicatedKey, msg)
	}
	return errors.Wrap(err, msg)
}
