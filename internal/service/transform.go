package service

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/semprove/internal/derivation"
	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/logic"
	"github.com/Harshitk-cp/semprove/internal/semantics"
	"github.com/Harshitk-cp/semprove/internal/store"
	"go.uber.org/zap"
)

// AttemptSummary reports one composition attempt of a transform.
type AttemptSummary struct {
	Unit    string `json:"unit"`
	Rank    int    `json:"rank"`
	CCGID   string `json:"ccg_id,omitempty"`
	Status  string `json:"status"`
	Formula string `json:"formula,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TransformResult lists every attempt, in rank order per sentence unit, and
// the formulas that were stored.
type TransformResult struct {
	SentenceID int64            `json:"sentence_id"`
	Attempts   []AttemptSummary `json:"attempts"`
	Formulas   []domain.Formula `json:"formulas"`
	Dropped    int              `json:"dropped"`
}

// TransformService turns a registered sentence into stored formulas.
type TransformService struct {
	sentences domain.SentenceStore
	formulas  domain.FormulaStore
	source    derivation.Source
	composer  *semantics.Composer
	nbest     int
	logger    *zap.Logger
}

func NewTransformService(
	sentences domain.SentenceStore,
	formulas domain.FormulaStore,
	source derivation.Source,
	composer *semantics.Composer,
	nbest int,
	logger *zap.Logger,
) *TransformService {
	return &TransformService{
		sentences: sentences,
		formulas:  formulas,
		source:    source,
		composer:  composer,
		nbest:     nbest,
		logger:    logger,
	}
}

// Transform composes the derivations of a sentence and stores one formula per
// distinct valid root formula, all sharing the sentence's merged library.
// Failed attempts and unparseable formulas are reported, not returned as
// errors. nbest overrides the service default when positive.
func (s *TransformService) Transform(ctx context.Context, sentenceID int64, nbest int) (*TransformResult, error) {
	sen, err := s.sentences.GetByID(ctx, sentenceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSentenceNotFound
		}
		return nil, &domain.StoreError{Op: "fetch sentence", Err: err}
	}
	if nbest <= 0 {
		nbest = s.nbest
	}

	root, err := s.source.Load(ctx, derivation.Request{SentenceID: sen.ID, Text: sen.Text})
	if err != nil {
		return nil, err
	}
	units := root.Sentences()
	if len(units) == 0 {
		return nil, domain.ErrDerivationUnavailable
	}

	res := &TransformResult{SentenceID: sen.ID, Formulas: []domain.Formula{}}
	var successful []semantics.Attempt
	for _, unit := range units {
		attempts, err := s.composer.ComposeSentence(ctx, unit, nbest)
		if err != nil {
			if errors.Is(err, domain.ErrDerivationUnavailable) && ctx.Err() == nil {
				res.Attempts = append(res.Attempts, AttemptSummary{
					Unit:   unit.ID,
					Status: string(semantics.StatusFailed),
					Error:  err.Error(),
				})
				continue
			}
			return nil, err
		}
		for _, a := range attempts {
			sum := AttemptSummary{Unit: unit.ID, Rank: a.Rank, CCGID: a.CCGID, Status: string(a.Status), Formula: a.Formula}
			if a.Err != nil {
				sum.Error = a.Err.Error()
			}
			res.Attempts = append(res.Attempts, sum)
			if a.Status == semantics.StatusSuccess {
				successful = append(successful, a)
			}
		}
	}

	ex := semantics.Extract(successful)
	seen := make(map[string]bool)
	for _, text := range ex.Formulas {
		if seen[text] {
			continue
		}
		seen[text] = true
		if err := logic.Validate(text); err != nil {
			s.logger.Debug("dropping invalid formula",
				zap.Int64("sentence_id", sen.ID),
				zap.String("formula", text),
				zap.Error(err),
			)
			res.Dropped++
			continue
		}
		f := domain.Formula{
			SentenceID: sen.ID,
			Text:       text,
			Library:    ex.Library,
			Quality:    true,
			Validated:  true,
		}
		if err := s.formulas.Create(ctx, &f); err != nil {
			return nil, &domain.StoreError{Op: "register formula", Err: err}
		}
		res.Formulas = append(res.Formulas, f)
	}

	s.logger.Info("sentence transformed",
		zap.Int64("sentence_id", sen.ID),
		zap.Int("attempts", len(res.Attempts)),
		zap.Int("formulas", len(res.Formulas)),
		zap.Int("dropped", res.Dropped),
	)
	return res, nil
}
