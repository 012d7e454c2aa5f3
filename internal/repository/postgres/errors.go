package postgres

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

// IsDuplicateError checks if error is a unique constraint violation.
func IsDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation
}

// IsForeignKeyError checks if error is a foreign key violation.
func IsForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeForeignKeyViolation
}

// IsNoRowsError checks if error is a "no rows" error.
func IsNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// translateError maps store errors into the domain taxonomy so pgx types
// never leak past the repository layer. Errors already in the taxonomy pass
// through unchanged.
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConstraint),
		errors.Is(err, domain.ErrConnection),
		errors.Is(err, domain.ErrPoolExhausted),
		errors.Is(err, domain.ErrNestedTransaction):
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeForeignKeyViolation:
			return &domain.ConstraintError{
				Message:    fmt.Sprintf("%s: referenced row does not exist", op),
				Constraint: pgErr.ConstraintName,
			}
		case pgCodeUniqueViolation:
			return &domain.ConstraintError{
				Message:    fmt.Sprintf("%s: duplicate value", op),
				Constraint: pgErr.ConstraintName,
			}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &domain.ConnectionError{
			Message: fmt.Sprintf("%s: database unreachable: %v", op, err),
			Err:     err,
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
