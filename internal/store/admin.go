package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminStore implements the operations that span tables.
type AdminStore struct {
	db *pgxpool.Pool
}

func NewAdminStore(db *pgxpool.Pool) *AdminStore {
	return &AdminStore{db: db}
}

var deleteQueries = map[domain.Table]string{
	domain.TableSentence: `DELETE FROM sentence WHERE id = $1`,
	domain.TableFormula:  `DELETE FROM formula WHERE id = $1`,
	domain.TableTheorem:  `DELETE FROM theorem WHERE id = $1`,
}

// Delete removes one row. Rows referencing it elsewhere are left alone.
func (s *AdminStore) Delete(ctx context.Context, table domain.Table, id int64) error {
	q, ok := deleteQueries[table]
	if !ok {
		return domain.ErrUnknownTable
	}
	tag, err := s.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AdminStore) Export(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{Version: domain.SnapshotVersion, ExportedAt: time.Now().UTC()}

	rows, err := s.db.Query(ctx, `SELECT id, text, created_at FROM sentence ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("export sentences: %w", err)
	}
	snap.Sentences, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Sentence, error) {
		var sen domain.Sentence
		err := row.Scan(&sen.ID, &sen.Text, &sen.CreatedAt)
		return sen, err
	})
	if err != nil {
		return nil, fmt.Errorf("export sentences: %w", err)
	}

	rows, err = s.db.Query(ctx, `SELECT `+formulaColumns+` FROM formula ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("export formulas: %w", err)
	}
	snap.Formulas, err = scanFormulas(rows)
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("export formulas: %w", err)
	}

	rows, err = s.db.Query(ctx, `SELECT id, premise_ids, conclusion_id, library, result, created_at FROM theorem ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("export theorems: %w", err)
	}
	snap.Theorems, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Theorem, error) {
		var t domain.Theorem
		var premises, result string
		if err := row.Scan(&t.ID, &premises, &t.ConclusionID, &t.Library, &result, &t.CreatedAt); err != nil {
			return t, err
		}
		t.Result = domain.ProofResult(result)
		t.PremiseIDs, err = domain.SplitIDs(premises)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("export theorems: %w", err)
	}
	return snap, nil
}

// Import replays a snapshot inside one transaction, keeping row ids and
// advancing the id sequences past them. Formula text is not re-validated.
func (s *AdminStore) Import(ctx context.Context, snap *domain.Snapshot) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		for _, sen := range snap.Sentences {
			if _, err := tx.Exec(ctx,
				`INSERT INTO sentence (id, text, created_at) VALUES ($1, $2, $3)`,
				sen.ID, sen.Text, createdAt(sen.CreatedAt),
			); err != nil {
				return fmt.Errorf("import sentence %d: %w", sen.ID, conflict(err))
			}
		}
		for _, f := range snap.Formulas {
			if _, err := tx.Exec(ctx,
				`INSERT INTO formula (id, sentence_id, text, library, quality, validated, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				f.ID, f.SentenceID, f.Text, f.Library, f.Quality, f.Validated, createdAt(f.CreatedAt),
			); err != nil {
				return fmt.Errorf("import formula %d: %w", f.ID, conflict(err))
			}
		}
		for _, t := range snap.Theorems {
			if _, err := tx.Exec(ctx,
				`INSERT INTO theorem (id, premise_ids, conclusion_id, library, result, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				t.ID, domain.JoinIDs(t.PremiseIDs), t.ConclusionID, t.Library, string(t.Result), createdAt(t.CreatedAt),
			); err != nil {
				return fmt.Errorf("import theorem %d: %w", t.ID, conflict(err))
			}
		}
		for _, table := range []string{"sentence", "formula", "theorem"} {
			if _, err := tx.Exec(ctx, fmt.Sprintf(
				`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
				table,
			)); err != nil {
				return fmt.Errorf("advance %s sequence: %w", table, err)
			}
		}
		return nil
	})
}

func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

var _ domain.AdminStore = (*AdminStore)(nil)
