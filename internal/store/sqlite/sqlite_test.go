package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/store"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestOpen_AppliesPragmas(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "semprove.db"), nil)
	require.NoError(t, err)
	defer db.Close()

	var journalMode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var busyTimeout int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	assert.Equal(t, BusyTimeoutMS, busyTimeout)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Migrate(context.Background(), db))
}

func TestSentenceStore(t *testing.T) {
	ctx := context.Background()
	s := NewSentenceStore(setupTestDB(t))

	sen := &domain.Sentence{Text: "Every man dies."}
	require.NoError(t, s.Create(ctx, sen))
	assert.Equal(t, int64(1), sen.ID)
	assert.False(t, sen.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, sen.ID)
	require.NoError(t, err)
	assert.Equal(t, "Every man dies.", got.Text)
	assert.WithinDuration(t, sen.CreatedAt, got.CreatedAt, time.Second)

	_, err = s.GetByID(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFormulaStore(t *testing.T) {
	ctx := context.Background()
	s := NewFormulaStore(setupTestDB(t))

	first := &domain.Formula{SentenceID: 7, Text: "all x.(man(x) -> die(x))", Library: "Parameter man : Entity -> Prop.", Quality: true, Validated: true}
	second := &domain.Formula{SentenceID: 7, Text: "exists x.man(x)", Quality: true, Validated: true}
	other := &domain.Formula{SentenceID: 8, Text: "die(socrates)", Quality: true, Validated: true}
	for _, f := range []*domain.Formula{first, second, other} {
		require.NoError(t, s.Create(ctx, f))
	}

	got, err := s.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Text, got.Text)
	assert.Equal(t, first.Library, got.Library)
	assert.True(t, got.Quality)
	assert.True(t, got.Validated)

	list, err := s.ListBySentence(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	list, err = s.ListBySentence(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.UpdateQuality(ctx, first.ID, false))
	got, err = s.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.Quality)
	assert.Equal(t, first.Text, got.Text)

	assert.ErrorIs(t, s.UpdateQuality(ctx, 99, true), store.ErrNotFound)
	_, err = s.GetByID(ctx, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTheoremStore(t *testing.T) {
	ctx := context.Background()
	s := NewTheoremStore(setupTestDB(t))

	th := &domain.Theorem{PremiseIDs: []int64{3, 1}, ConclusionID: 2, Library: "Parameter die : Entity -> Prop.", Result: domain.ResultDisproved}
	require.NoError(t, s.Create(ctx, th))

	got, err := s.GetByID(ctx, th.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, got.PremiseIDs)
	assert.Equal(t, int64(2), got.ConclusionID)
	assert.Equal(t, domain.ResultDisproved, got.Result)

	_, err = s.GetByID(ctx, 5)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTheoremStore_RejectsUnknownResult(t *testing.T) {
	s := NewTheoremStore(setupTestDB(t))
	err := s.Create(context.Background(), &domain.Theorem{PremiseIDs: []int64{1}, ConclusionID: 2, Result: "maybe"})
	assert.Error(t, err)
}

func TestAdminStore_Delete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	sentences := NewSentenceStore(db)
	admin := NewAdminStore(db)

	sen := &domain.Sentence{Text: "Socrates is a man."}
	require.NoError(t, sentences.Create(ctx, sen))

	require.NoError(t, admin.Delete(ctx, domain.TableSentence, sen.ID))
	_, err := sentences.GetByID(ctx, sen.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, admin.Delete(ctx, domain.TableSentence, sen.ID), store.ErrNotFound)
	assert.ErrorIs(t, admin.Delete(ctx, domain.Table("users"), 1), domain.ErrUnknownTable)
}

func TestAdminStore_ExportImport(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)

	sen := &domain.Sentence{Text: "Socrates is a man."}
	require.NoError(t, NewSentenceStore(src).Create(ctx, sen))
	f := &domain.Formula{SentenceID: sen.ID, Text: "man(socrates)", Quality: false, Validated: true}
	require.NoError(t, NewFormulaStore(src).Create(ctx, f))
	th := &domain.Theorem{PremiseIDs: []int64{f.ID}, ConclusionID: f.ID, Result: domain.ResultProved}
	require.NoError(t, NewTheoremStore(src).Create(ctx, th))

	snap, err := NewAdminStore(src).Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SnapshotVersion, snap.Version)
	require.Len(t, snap.Sentences, 1)
	require.Len(t, snap.Formulas, 1)
	require.Len(t, snap.Theorems, 1)
	assert.False(t, snap.Formulas[0].Quality)

	dst := setupTestDB(t)
	admin := NewAdminStore(dst)
	require.NoError(t, admin.Import(ctx, snap))

	got, err := NewFormulaStore(dst).GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "man(socrates)", got.Text)
	assert.False(t, got.Quality)

	gotTh, err := NewTheoremStore(dst).GetByID(ctx, th.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{f.ID}, gotTh.PremiseIDs)
	assert.Equal(t, domain.ResultProved, gotTh.Result)

	// New rows continue after the imported ids.
	next := &domain.Sentence{Text: "Every man dies."}
	require.NoError(t, NewSentenceStore(dst).Create(ctx, next))
	assert.Greater(t, next.ID, sen.ID)

	err = admin.Import(ctx, snap)
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestAdminStore_ImportRollsBack(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	snap := &domain.Snapshot{
		Version:   domain.SnapshotVersion,
		Sentences: []domain.Sentence{{ID: 1, Text: "a"}},
		Theorems:  []domain.Theorem{{ID: 1, PremiseIDs: []int64{1}, ConclusionID: 1, Result: "maybe"}},
	}
	require.Error(t, NewAdminStore(db).Import(ctx, snap))

	_, err := NewSentenceStore(db).GetByID(ctx, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFormulaStore_UpdateQualityWithMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE formula SET quality = ? WHERE id = ?`)).
		WithArgs(false, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE formula SET quality = ? WHERE id = ?`)).
		WithArgs(true, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE formula SET quality = ? WHERE id = ?`)).
		WithArgs(true, int64(6)).
		WillReturnError(errors.New("disk I/O error"))

	s := NewFormulaStore(db)
	ctx := context.Background()
	if err := s.UpdateQuality(ctx, 4, false); err != nil {
		t.Fatalf("UpdateQuality: %v", err)
	}
	if err := s.UpdateQuality(ctx, 5, true); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateQuality(ctx, 6, true); err == nil {
		t.Fatal("expected driver error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
