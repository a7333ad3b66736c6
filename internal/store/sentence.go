package store

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SentenceStore struct {
	db *pgxpool.Pool
}

func NewSentenceStore(db *pgxpool.Pool) *SentenceStore {
	return &SentenceStore{db: db}
}

func (s *SentenceStore) Create(ctx context.Context, sen *domain.Sentence) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO sentence (text) VALUES ($1) RETURNING id, created_at`,
		sen.Text,
	).Scan(&sen.ID, &sen.CreatedAt)
}

func (s *SentenceStore) GetByID(ctx context.Context, id int64) (*domain.Sentence, error) {
	sen := &domain.Sentence{}
	err := s.db.QueryRow(ctx,
		`SELECT id, text, created_at FROM sentence WHERE id = $1`,
		id,
	).Scan(&sen.ID, &sen.Text, &sen.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sen, nil
}

var _ domain.SentenceStore = (*SentenceStore)(nil)
