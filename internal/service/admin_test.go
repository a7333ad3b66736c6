package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/store"
	"go.uber.org/zap"
)

// mockAdminStore implements domain.AdminStore for testing.
type mockAdminStore struct {
	rows     map[domain.Table]map[int64]bool
	imported []*domain.Snapshot
	err      error
}

func newMockAdminStore() *mockAdminStore {
	return &mockAdminStore{rows: map[domain.Table]map[int64]bool{
		domain.TableSentence: {1: true},
		domain.TableFormula:  {1: true, 2: true},
		domain.TableTheorem:  {},
	}}
}

func (m *mockAdminStore) Delete(ctx context.Context, table domain.Table, id int64) error {
	if m.err != nil {
		return m.err
	}
	if !m.rows[table][id] {
		return store.ErrNotFound
	}
	delete(m.rows[table], id)
	return nil
}

func (m *mockAdminStore) Export(ctx context.Context) (*domain.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Snapshot{Version: domain.SnapshotVersion, Sentences: []domain.Sentence{{ID: 1, Text: "a"}}}, nil
}

func (m *mockAdminStore) Import(ctx context.Context, snap *domain.Snapshot) error {
	if m.err != nil {
		return m.err
	}
	m.imported = append(m.imported, snap)
	return nil
}

func TestAdminService_Delete(t *testing.T) {
	ms := newMockAdminStore()
	s := NewAdminService(ms, zap.NewNop())
	ctx := context.Background()

	if err := s.Delete(ctx, "formulas", 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ms.rows[domain.TableFormula][2] {
		t.Fatal("expected formula 2 to be deleted")
	}
	if !ms.rows[domain.TableFormula][1] || !ms.rows[domain.TableSentence][1] {
		t.Fatal("delete must not touch other rows")
	}

	if err := s.Delete(ctx, "formula", 2); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "users", 1); !errors.Is(err, domain.ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
}

func TestAdminService_Import(t *testing.T) {
	ms := newMockAdminStore()
	s := NewAdminService(ms, zap.NewNop())
	ctx := context.Background()

	snap := &domain.Snapshot{
		Version:  domain.SnapshotVersion,
		Formulas: []domain.Formula{{ID: 1, Text: "not (a formula", Validated: true}},
		Theorems: []domain.Theorem{{ID: 1, PremiseIDs: []int64{1}, ConclusionID: 1, Result: domain.ResultUnknown}},
	}
	if err := s.Import(ctx, snap); err != nil {
		t.Fatalf("expected snapshot formulas to be trusted, got %v", err)
	}
	if len(ms.imported) != 1 {
		t.Fatalf("expected 1 import, got %d", len(ms.imported))
	}

	if err := s.Import(ctx, &domain.Snapshot{Version: 2}); !errors.Is(err, ErrUnsupportedSnapshot) {
		t.Fatalf("expected ErrUnsupportedSnapshot, got %v", err)
	}

	bad := &domain.Snapshot{Version: domain.SnapshotVersion, Theorems: []domain.Theorem{{ID: 1, Result: "maybe"}}}
	if err := s.Import(ctx, bad); err == nil {
		t.Fatal("expected invalid result to be rejected")
	}

	ms.err = store.ErrConflict
	if err := s.Import(ctx, snap); !errors.Is(err, ErrSnapshotConflict) {
		t.Fatalf("expected ErrSnapshotConflict, got %v", err)
	}
}

func TestAdminService_ExportStoreError(t *testing.T) {
	ms := newMockAdminStore()
	ms.err = errStoreDown
	s := NewAdminService(ms, zap.NewNop())

	_, err := s.Export(context.Background())
	var se *domain.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
