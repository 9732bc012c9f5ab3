package models

import (
	"time"
)

// TextSummary is the persisted summary record.
// Table: text_summaries
//
// Records are created by the API with an empty summary; the generator
// only ever overwrites the Summary column of an existing row.
type TextSummary struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"size:2048;not null" json:"url"`
	Summary   string    `gorm:"type:text" json:"summary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
