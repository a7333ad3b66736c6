package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/store"
)

var (
	ErrSentenceNotFound  = errors.New("sentence not found")
	ErrSentenceTextEmpty = errors.New("text is required")
)

// SentenceService registers sentences. Identical text registered twice gets
// two rows.
type SentenceService struct {
	store domain.SentenceStore
}

func NewSentenceService(s domain.SentenceStore) *SentenceService {
	return &SentenceService{store: s}
}

func (s *SentenceService) Register(ctx context.Context, text string) (*domain.Sentence, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrSentenceTextEmpty
	}
	sen := &domain.Sentence{Text: text}
	if err := s.store.Create(ctx, sen); err != nil {
		return nil, &domain.StoreError{Op: "register sentence", Err: err}
	}
	return sen, nil
}

func (s *SentenceService) GetByID(ctx context.Context, id int64) (*domain.Sentence, error) {
	sen, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSentenceNotFound
		}
		return nil, &domain.StoreError{Op: "fetch sentence", Err: err}
	}
	return sen, nil
}
