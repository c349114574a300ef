package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// serializationFailure is the SQLSTATE Postgres reports when a SERIALIZABLE
// transaction loses a conflict at commit.
const serializationFailure = "40001"

// IsSerializationFailure reports whether err is a serialization conflict.
// Placement is never retried on one; the caller resubmits.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == serializationFailure
}
