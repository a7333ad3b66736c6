package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/prover"
	"github.com/Harshitk-cp/semprove/internal/semantics"
	"github.com/Harshitk-cp/semprove/internal/store"
	"go.uber.org/zap"
)

var ErrTheoremNotFound = errors.New("theorem not found")

// Prover classifies an entailment problem. *prover.Orchestrator satisfies it.
type Prover interface {
	Prove(ctx context.Context, p prover.Problem) prover.Outcome
}

// ProofReport is a recorded attempt together with the run that produced it.
type ProofReport struct {
	Theorem *domain.Theorem `json:"theorem"`
	Reason  string          `json:"reason,omitempty"`
	Script  string          `json:"script,omitempty"`
}

type ProofService struct {
	formulas domain.FormulaStore
	theorems domain.TheoremStore
	prover   Prover
	logger   *zap.Logger
}

func NewProofService(formulas domain.FormulaStore, theorems domain.TheoremStore, p Prover, logger *zap.Logger) *ProofService {
	return &ProofService{formulas: formulas, theorems: theorems, prover: p, logger: logger}
}

// Prove checks whether the premises entail the conclusion and records the
// attempt. Every run that reaches the prover is recorded, whatever its
// result; repeated runs are not deduplicated.
func (s *ProofService) Prove(ctx context.Context, premiseIDs []int64, conclusionID int64) (*ProofReport, error) {
	problem := prover.Problem{Premises: make([]string, 0, len(premiseIDs))}
	fragments := make([]string, 0, len(premiseIDs)+1)
	for _, id := range premiseIDs {
		f, err := s.eligible(ctx, id)
		if err != nil {
			return nil, err
		}
		problem.Premises = append(problem.Premises, f.Text)
		fragments = append(fragments, f.Library)
	}
	concl, err := s.eligible(ctx, conclusionID)
	if err != nil {
		return nil, err
	}
	problem.Conclusion = concl.Text
	problem.Library = semantics.MergeLibraries(append(fragments, concl.Library)...)

	out := s.prover.Prove(ctx, problem)

	th := &domain.Theorem{
		PremiseIDs:   append([]int64(nil), premiseIDs...),
		ConclusionID: conclusionID,
		Library:      problem.Library,
		Result:       out.Result,
	}
	if err := s.theorems.Create(ctx, th); err != nil {
		return nil, &domain.StoreError{Op: "register theorem", Err: err}
	}
	s.logger.Info("theorem recorded",
		zap.Int64("id", th.ID),
		zap.Int64s("premise_ids", th.PremiseIDs),
		zap.Int64("conclusion_id", conclusionID),
		zap.String("result", string(th.Result)),
	)
	return &ProofReport{Theorem: th, Reason: out.Reason, Script: out.Script}, nil
}

func (s *ProofService) eligible(ctx context.Context, id int64) (*domain.Formula, error) {
	f, err := s.formulas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("formula %d: %w", id, ErrFormulaNotFound)
		}
		return nil, &domain.StoreError{Op: "fetch formula", Err: err}
	}
	if !f.Eligible() {
		return nil, fmt.Errorf("formula %d: %w", id, domain.ErrIneligibleFormula)
	}
	return f, nil
}

func (s *ProofService) GetTheorem(ctx context.Context, id int64) (*domain.Theorem, error) {
	th, err := s.theorems.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTheoremNotFound
		}
		return nil, &domain.StoreError{Op: "fetch theorem", Err: err}
	}
	return th, nil
}
