package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation checks if error is a unique constraint violation.
// Uniqueness races between concurrent writers are resolved here, by the
// store rejecting the second writer, never by check-then-write in
// application code.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}

// isNoRows checks if error is pgx's "no rows" error
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isInvalidRegex checks if error is Postgres rejecting a regex pattern.
// Postgres's ARE dialect is stricter than the pre-check clients pass, so
// a pattern can survive validation and still fail here.
func isInvalidRegex(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.InvalidRegularExpression
	}
	return false
}
