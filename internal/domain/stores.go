package domain

import "context"

type SentenceStore interface {
	Create(ctx context.Context, s *Sentence) error
	GetByID(ctx context.Context, id int64) (*Sentence, error)
}

type FormulaStore interface {
	Create(ctx context.Context, f *Formula) error
	GetByID(ctx context.Context, id int64) (*Formula, error)
	ListBySentence(ctx context.Context, sentenceID int64) ([]Formula, error)
	UpdateQuality(ctx context.Context, id int64, quality bool) error
}

type TheoremStore interface {
	Create(ctx context.Context, t *Theorem) error
	GetByID(ctx context.Context, id int64) (*Theorem, error)
}

// AdminStore holds the table-generic operations.
type AdminStore interface {
	Delete(ctx context.Context, table Table, id int64) error
	Export(ctx context.Context) (*Snapshot, error)
	Import(ctx context.Context, snap *Snapshot) error
}
