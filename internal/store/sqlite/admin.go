package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Harshitk-cp/semprove/internal/domain"
)

type AdminStore struct {
	db *sql.DB
}

func NewAdminStore(db *sql.DB) *AdminStore {
	return &AdminStore{db: db}
}

var deleteQueries = map[domain.Table]string{
	domain.TableSentence: `DELETE FROM sentence WHERE id = ?`,
	domain.TableFormula:  `DELETE FROM formula WHERE id = ?`,
	domain.TableTheorem:  `DELETE FROM theorem WHERE id = ?`,
}

func (s *AdminStore) Delete(ctx context.Context, table domain.Table, id int64) error {
	q, ok := deleteQueries[table]
	if !ok {
		return domain.ErrUnknownTable
	}
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (s *AdminStore) Export(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{Version: domain.SnapshotVersion, ExportedAt: time.Now().UTC()}

	if err := s.exportSentences(ctx, snap); err != nil {
		return nil, fmt.Errorf("export sentences: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+formulaColumns+` FROM formula ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("export formulas: %w", err)
	}
	snap.Formulas, err = scanFormulas(rows)
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("export formulas: %w", err)
	}

	if err := s.exportTheorems(ctx, snap); err != nil {
		return nil, fmt.Errorf("export theorems: %w", err)
	}
	return snap, nil
}

func (s *AdminStore) exportSentences(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, created_at FROM sentence ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var sen domain.Sentence
		if err := rows.Scan(&sen.ID, &sen.Text, &sen.CreatedAt); err != nil {
			return err
		}
		snap.Sentences = append(snap.Sentences, sen)
	}
	return rows.Err()
}

func (s *AdminStore) exportTheorems(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, premise_ids, conclusion_id, library, result, created_at FROM theorem ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var t domain.Theorem
		var premises, result string
		if err := rows.Scan(&t.ID, &premises, &t.ConclusionID, &t.Library, &result, &t.CreatedAt); err != nil {
			return err
		}
		if t.PremiseIDs, err = domain.SplitIDs(premises); err != nil {
			return err
		}
		t.Result = domain.ProofResult(result)
		snap.Theorems = append(snap.Theorems, t)
	}
	return rows.Err()
}

// Import replays a snapshot in one transaction and keeps row ids. AUTOINCREMENT
// advances past explicit ids on its own.
func (s *AdminStore) Import(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, sen := range snap.Sentences {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sentence (id, text, created_at) VALUES (?, ?, ?)`,
			sen.ID, sen.Text, createdAt(sen.CreatedAt),
		); err != nil {
			return fmt.Errorf("import sentence %d: %w", sen.ID, conflict(err))
		}
	}
	for _, f := range snap.Formulas {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO formula (id, sentence_id, text, library, quality, validated, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.SentenceID, f.Text, f.Library, f.Quality, f.Validated, createdAt(f.CreatedAt),
		); err != nil {
			return fmt.Errorf("import formula %d: %w", f.ID, conflict(err))
		}
	}
	for _, t := range snap.Theorems {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO theorem (id, premise_ids, conclusion_id, library, result, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, domain.JoinIDs(t.PremiseIDs), t.ConclusionID, t.Library, string(t.Result), createdAt(t.CreatedAt),
		); err != nil {
			return fmt.Errorf("import theorem %d: %w", t.ID, conflict(err))
		}
	}
	return tx.Commit()
}

func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

var _ domain.AdminStore = (*AdminStore)(nil)
