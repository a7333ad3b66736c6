package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/store"
)

type FormulaStore struct {
	db *sql.DB
}

func NewFormulaStore(db *sql.DB) *FormulaStore {
	return &FormulaStore{db: db}
}

const formulaColumns = `id, sentence_id, text, library, quality, validated, created_at`

func (s *FormulaStore) Create(ctx context.Context, f *domain.Formula) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO formula (sentence_id, text, library, quality, validated, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		f.SentenceID, f.Text, f.Library, f.Quality, f.Validated, now,
	)
	if err != nil {
		return err
	}
	if f.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	f.CreatedAt = now
	return nil
}

func (s *FormulaStore) GetByID(ctx context.Context, id int64) (*domain.Formula, error) {
	f := &domain.Formula{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+formulaColumns+` FROM formula WHERE id = ?`,
		id,
	).Scan(&f.ID, &f.SentenceID, &f.Text, &f.Library, &f.Quality, &f.Validated, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FormulaStore) ListBySentence(ctx context.Context, sentenceID int64) ([]domain.Formula, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+formulaColumns+` FROM formula WHERE sentence_id = ? ORDER BY id`,
		sentenceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list formulas query: %w", err)
	}
	defer rows.Close()
	return scanFormulas(rows)
}

func (s *FormulaStore) UpdateQuality(ctx context.Context, id int64, quality bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE formula SET quality = ? WHERE id = ?`,
		quality, id,
	)
	if err != nil {
		return err
	}
	return affected(res)
}

func scanFormulas(rows *sql.Rows) ([]domain.Formula, error) {
	var formulas []domain.Formula
	for rows.Next() {
		var f domain.Formula
		if err := rows.Scan(&f.ID, &f.SentenceID, &f.Text, &f.Library, &f.Quality, &f.Validated, &f.CreatedAt); err != nil {
			return nil, err
		}
		formulas = append(formulas, f)
	}
	return formulas, rows.Err()
}

var _ domain.FormulaStore = (*FormulaStore)(nil)
