package domain

import "time"

// Formula is a validated logical form of a sentence together with the typed
// vocabulary needed to check it. Quality is the only field a curator may
// change.
type Formula struct {
	ID         int64     `json:"id"`
	SentenceID int64     `json:"sentence_id"`
	Text       string    `json:"text"`
	Library    string    `json:"library"`
	Quality    bool      `json:"quality"`
	Validated  bool      `json:"validated"`
	CreatedAt  time.Time `json:"created_at"`
}

// Eligible reports whether f may be used as a premise or conclusion.
func (f *Formula) Eligible() bool {
	return f.Validated
}
