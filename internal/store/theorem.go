package store

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TheoremStore struct {
	db *pgxpool.Pool
}

func NewTheoremStore(db *pgxpool.Pool) *TheoremStore {
	return &TheoremStore{db: db}
}

func (s *TheoremStore) Create(ctx context.Context, t *domain.Theorem) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO theorem (premise_ids, conclusion_id, library, result)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		domain.JoinIDs(t.PremiseIDs), t.ConclusionID, t.Library, string(t.Result),
	).Scan(&t.ID, &t.CreatedAt)
}

func (s *TheoremStore) GetByID(ctx context.Context, id int64) (*domain.Theorem, error) {
	t := &domain.Theorem{}
	var premises, result string
	err := s.db.QueryRow(ctx,
		`SELECT id, premise_ids, conclusion_id, library, result, created_at FROM theorem WHERE id = $1`,
		id,
	).Scan(&t.ID, &premises, &t.ConclusionID, &t.Library, &result, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.PremiseIDs, err = domain.SplitIDs(premises); err != nil {
		return nil, err
	}
	t.Result = domain.ProofResult(result)
	return t, nil
}

var _ domain.TheoremStore = (*TheoremStore)(nil)
