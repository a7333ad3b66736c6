package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/store"
	"go.uber.org/zap"
)

var (
	ErrRowNotFound         = errors.New("row not found")
	ErrSnapshotConflict    = errors.New("snapshot rows collide with existing rows")
	ErrUnsupportedSnapshot = errors.New("unsupported snapshot version")
)

type AdminService struct {
	store  domain.AdminStore
	logger *zap.Logger
}

func NewAdminService(s domain.AdminStore, logger *zap.Logger) *AdminService {
	return &AdminService{store: s, logger: logger}
}

// Delete removes a single row. Rows that reference it are left dangling.
func (s *AdminService) Delete(ctx context.Context, table string, id int64) error {
	t, err := domain.ParseTable(table)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, t, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRowNotFound
		}
		return &domain.StoreError{Op: "delete " + string(t), Err: err}
	}
	s.logger.Info("row deleted", zap.String("table", string(t)), zap.Int64("id", id))
	return nil
}

func (s *AdminService) Export(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := s.store.Export(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "export", Err: err}
	}
	return snap, nil
}

// Import loads a snapshot as is. Formula text is trusted and not validated.
func (s *AdminService) Import(ctx context.Context, snap *domain.Snapshot) error {
	if snap.Version != domain.SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedSnapshot, snap.Version)
	}
	for _, t := range snap.Theorems {
		if !domain.ValidProofResult(string(t.Result)) {
			return fmt.Errorf("theorem %d: invalid result %q", t.ID, t.Result)
		}
	}
	if err := s.store.Import(ctx, snap); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrSnapshotConflict
		}
		return &domain.StoreError{Op: "import", Err: err}
	}
	s.logger.Info("snapshot imported",
		zap.Int("sentences", len(snap.Sentences)),
		zap.Int("formulas", len(snap.Formulas)),
		zap.Int("theorems", len(snap.Theorems)),
	)
	return nil
}
