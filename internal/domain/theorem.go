package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProofResult is the entailment classification of a proof run.
type ProofResult string

const (
	ResultProved    ProofResult = "proved"
	ResultDisproved ProofResult = "not proved"
	ResultUnknown   ProofResult = "unknown"
)

func ValidProofResult(s string) bool {
	switch ProofResult(s) {
	case ResultProved, ResultDisproved, ResultUnknown:
		return true
	}
	return false
}

// Theorem is one recorded proof attempt. Rows are append-only.
type Theorem struct {
	ID           int64       `json:"id"`
	PremiseIDs   []int64     `json:"premise_ids"`
	ConclusionID int64       `json:"conclusion_id"`
	Library      string      `json:"library"`
	Result       ProofResult `json:"result"`
	CreatedAt    time.Time   `json:"created_at"`
}

// idSeparator joins premise ids in the premise_ids column.
const idSeparator = ","

// JoinIDs renders ids the way the premise_ids column stores them.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, idSeparator)
}

// SplitIDs parses a premise_ids column value.
func SplitIDs(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, idSeparator)
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("premise id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
