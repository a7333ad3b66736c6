package store

import (
	"context"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Set bundles the stores of one database. Ping reports whether the database
// is reachable.
type Set struct {
	Sentences domain.SentenceStore
	Formulas  domain.FormulaStore
	Theorems  domain.TheoremStore
	Admin     domain.AdminStore
	Ping      func(ctx context.Context) error
}

// NewSet returns the Postgres stores backed by db.
func NewSet(db *pgxpool.Pool) *Set {
	return &Set{
		Sentences: NewSentenceStore(db),
		Formulas:  NewFormulaStore(db),
		Theorems:  NewTheoremStore(db),
		Admin:     NewAdminStore(db),
		Ping:      db.Ping,
	}
}
