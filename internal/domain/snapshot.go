package domain

import "time"

const SnapshotVersion = 1

// Snapshot is a full dump of the three provenance relations. Import replays
// the rows in the order sentences, formulas, theorems and keeps their ids.
type Snapshot struct {
	Version    int        `json:"version"`
	ExportedAt time.Time  `json:"exported_at"`
	Sentences  []Sentence `json:"sentences"`
	Formulas   []Formula  `json:"formulas"`
	Theorems   []Theorem  `json:"theorems"`
}
