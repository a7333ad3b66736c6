package service

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/store"
)

var errStoreDown = errors.New("connection refused")

// mockSentenceStore implements domain.SentenceStore for testing.
type mockSentenceStore struct {
	sentences map[int64]*domain.Sentence
	nextID    int64
	err       error
}

func newMockSentenceStore() *mockSentenceStore {
	return &mockSentenceStore{sentences: make(map[int64]*domain.Sentence)}
}

func (m *mockSentenceStore) Create(ctx context.Context, s *domain.Sentence) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	s.ID = m.nextID
	cp := *s
	m.sentences[s.ID] = &cp
	return nil
}

func (m *mockSentenceStore) GetByID(ctx context.Context, id int64) (*domain.Sentence, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sentences[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// mockFormulaStore implements domain.FormulaStore for testing.
type mockFormulaStore struct {
	formulas map[int64]*domain.Formula
	nextID   int64
	err      error
}

func newMockFormulaStore() *mockFormulaStore {
	return &mockFormulaStore{formulas: make(map[int64]*domain.Formula)}
}

func (m *mockFormulaStore) Create(ctx context.Context, f *domain.Formula) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	f.ID = m.nextID
	cp := *f
	m.formulas[f.ID] = &cp
	return nil
}

func (m *mockFormulaStore) GetByID(ctx context.Context, id int64) (*domain.Formula, error) {
	if m.err != nil {
		return nil, m.err
	}
	f, ok := m.formulas[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *mockFormulaStore) ListBySentence(ctx context.Context, sentenceID int64) ([]domain.Formula, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Formula
	for id := int64(1); id <= m.nextID; id++ {
		if f, ok := m.formulas[id]; ok && f.SentenceID == sentenceID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *mockFormulaStore) UpdateQuality(ctx context.Context, id int64, quality bool) error {
	if m.err != nil {
		return m.err
	}
	f, ok := m.formulas[id]
	if !ok {
		return store.ErrNotFound
	}
	f.Quality = quality
	return nil
}

// add stores f directly, bypassing validation.
func (m *mockFormulaStore) add(f domain.Formula) int64 {
	m.nextID++
	f.ID = m.nextID
	m.formulas[f.ID] = &f
	return f.ID
}

// mockTheoremStore implements domain.TheoremStore for testing.
type mockTheoremStore struct {
	theorems []domain.Theorem
	err      error
}

func (m *mockTheoremStore) Create(ctx context.Context, t *domain.Theorem) error {
	if m.err != nil {
		return m.err
	}
	t.ID = int64(len(m.theorems) + 1)
	m.theorems = append(m.theorems, *t)
	return nil
}

func (m *mockTheoremStore) GetByID(ctx context.Context, id int64) (*domain.Theorem, error) {
	if id < 1 || int(id) > len(m.theorems) {
		return nil, store.ErrNotFound
	}
	t := m.theorems[id-1]
	return &t, nil
}
