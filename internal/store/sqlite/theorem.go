package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/store"
)

type TheoremStore struct {
	db *sql.DB
}

func NewTheoremStore(db *sql.DB) *TheoremStore {
	return &TheoremStore{db: db}
}

func (s *TheoremStore) Create(ctx context.Context, t *domain.Theorem) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO theorem (premise_ids, conclusion_id, library, result, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		domain.JoinIDs(t.PremiseIDs), t.ConclusionID, t.Library, string(t.Result), now,
	)
	if err != nil {
		return err
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	t.CreatedAt = now
	return nil
}

func (s *TheoremStore) GetByID(ctx context.Context, id int64) (*domain.Theorem, error) {
	t := &domain.Theorem{}
	var premises, result string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, premise_ids, conclusion_id, library, result, created_at FROM theorem WHERE id = ?`,
		id,
	).Scan(&t.ID, &premises, &t.ConclusionID, &t.Library, &result, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
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
