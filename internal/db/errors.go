package db

import (
	"context"
	"errors"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"usermanagement/internal/domain/common"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err came from a unique index rejecting a row.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return sqlgraph.IsUniqueConstraintError(err)
}

// WriteError classifies a failed write. Cancellation is passed through untouched
// so it is not mistaken for a storage fault.
func WriteError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if IsUniqueViolation(err) {
		return common.NewStorageError(op, common.StorageUniqueViolation, err)
	}
	return common.NewStorageError(op, common.StorageFailure, err)
}
