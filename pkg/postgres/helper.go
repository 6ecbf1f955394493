package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation (SQLSTATE 23503). Works through wrapped errors.
func IsForeignKeyViolation(err error) bool {
	return hasSQLState(err, "23503")
}

// IsUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	return hasSQLState(err, "23505")
}

func hasSQLState(err error, state string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == state
	}

	return false
}
