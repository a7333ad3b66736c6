package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/store"
)

type SentenceStore struct {
	db *sql.DB
}

func NewSentenceStore(db *sql.DB) *SentenceStore {
	return &SentenceStore{db: db}
}

func (s *SentenceStore) Create(ctx context.Context, sen *domain.Sentence) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sentence (text, created_at) VALUES (?, ?)`,
		sen.Text, now,
	)
	if err != nil {
		return err
	}
	if sen.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	sen.CreatedAt = now
	return nil
}

func (s *SentenceStore) GetByID(ctx context.Context, id int64) (*domain.Sentence, error) {
	sen := &domain.Sentence{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, text, created_at FROM sentence WHERE id = ?`,
		id,
	).Scan(&sen.ID, &sen.Text, &sen.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return sen, nil
}

var _ domain.SentenceStore = (*SentenceStore)(nil)
