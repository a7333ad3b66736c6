package domain

import "time"

// Sentence is a registered natural-language sentence. Text never changes
// after registration.
type Sentence struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
