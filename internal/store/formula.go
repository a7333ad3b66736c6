package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FormulaStore struct {
	db *pgxpool.Pool
}

func NewFormulaStore(db *pgxpool.Pool) *FormulaStore {
	return &FormulaStore{db: db}
}

const formulaColumns = `id, sentence_id, text, library, quality, validated, created_at`

func (s *FormulaStore) Create(ctx context.Context, f *domain.Formula) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO formula (sentence_id, text, library, quality, validated)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		f.SentenceID, f.Text, f.Library, f.Quality, f.Validated,
	).Scan(&f.ID, &f.CreatedAt)
}

func (s *FormulaStore) GetByID(ctx context.Context, id int64) (*domain.Formula, error) {
	f := &domain.Formula{}
	err := s.db.QueryRow(ctx,
		`SELECT `+formulaColumns+` FROM formula WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.SentenceID, &f.Text, &f.Library, &f.Quality, &f.Validated, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FormulaStore) ListBySentence(ctx context.Context, sentenceID int64) ([]domain.Formula, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+formulaColumns+` FROM formula WHERE sentence_id = $1 ORDER BY id`,
		sentenceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list formulas query: %w", err)
	}
	defer rows.Close()
	return scanFormulas(rows)
}

func (s *FormulaStore) UpdateQuality(ctx context.Context, id int64, quality bool) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE formula SET quality = $2 WHERE id = $1`,
		id, quality,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanFormulas(rows pgx.Rows) ([]domain.Formula, error) {
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
