package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// conflict maps a unique violation to ErrConflict.
func conflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}
