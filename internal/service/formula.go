package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/logic"
	"github.com/Harshitk-cp/semprove/internal/store"
	"go.uber.org/zap"
)

var ErrFormulaNotFound = errors.New("formula not found")

type FormulaService struct {
	store  domain.FormulaStore
	logger *zap.Logger
}

func NewFormulaService(s domain.FormulaStore, logger *zap.Logger) *FormulaService {
	return &FormulaService{store: s, logger: logger}
}

// Register validates text and stores it as a formula of sentenceID. An
// invalid formula is rejected with an error matching logic.ErrInvalidFormula
// and never reaches the store.
func (s *FormulaService) Register(ctx context.Context, sentenceID int64, text, library string) (*domain.Formula, error) {
	text = strings.TrimSpace(text)
	if err := logic.Validate(text); err != nil {
		return nil, err
	}
	f := &domain.Formula{
		SentenceID: sentenceID,
		Text:       text,
		Library:    library,
		Quality:    true,
		Validated:  true,
	}
	if err := s.store.Create(ctx, f); err != nil {
		return nil, &domain.StoreError{Op: "register formula", Err: err}
	}
	s.logger.Debug("formula registered", zap.Int64("id", f.ID), zap.Int64("sentence_id", sentenceID))
	return f, nil
}

func (s *FormulaService) GetByID(ctx context.Context, id int64) (*domain.Formula, error) {
	f, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFormulaNotFound
		}
		return nil, &domain.StoreError{Op: "fetch formula", Err: err}
	}
	return f, nil
}

func (s *FormulaService) ListBySentence(ctx context.Context, sentenceID int64) ([]domain.Formula, error) {
	formulas, err := s.store.ListBySentence(ctx, sentenceID)
	if err != nil {
		return nil, &domain.StoreError{Op: "list formulas", Err: err}
	}
	return formulas, nil
}

// UpdateQuality sets the curator flag, the only mutable field of a formula.
func (s *FormulaService) UpdateQuality(ctx context.Context, id int64, quality bool) error {
	if err := s.store.UpdateQuality(ctx, id, quality); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrFormulaNotFound
		}
		return &domain.StoreError{Op: "update quality", Err: err}
	}
	return nil
}
