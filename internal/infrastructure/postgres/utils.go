package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation, el único código SQLSTATE que los repos traducen a un
// error de dominio (ErrDuplicado).
const codeUniqueViolation = "23505"

// isUniqueViolation reporta si err proviene de un constraint único violado.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
