// Package sqlite is the embedded provenance store. It keeps the same three
// relations as the Postgres store in a single database file.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/semprove/internal/store"
	sqlite3 "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// BusyTimeoutMS is how long a writer waits on a locked database.
const BusyTimeoutMS = 5000

//go:embed schema.sql
var schema string

// Open opens the database at path and applies the connection pragmas.
// ":memory:" opens a private in-memory database on a single connection.
func Open(path string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", BusyTimeoutMS),
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if logger != nil {
		logger.Info("sqlite database opened", zap.String("path", path))
	}
	return db, nil
}

// Migrate creates the provenance tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// conflict maps primary key and unique violations to store.ErrConflict.
func conflict(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) &&
		(se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || se.ExtendedCode == sqlite3.ErrConstraintUnique) {
		return store.ErrConflict
	}
	return err
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// NewSet returns the sqlite stores backed by db.
func NewSet(db *sql.DB) *store.Set {
	return &store.Set{
		Sentences: NewSentenceStore(db),
		Formulas:  NewFormulaStore(db),
		Theorems:  NewTheoremStore(db),
		Admin:     NewAdminStore(db),
		Ping:      db.PingContext,
	}
}
