package dto

import (
	"time"

	"text-summary/models"
)

// SummaryDTO is the API representation of a summary record.
type SummaryDTO struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSummaryDTO(m models.TextSummary) SummaryDTO {
	return SummaryDTO{
		ID:        m.ID,
		URL:       m.URL,
		Summary:   m.Summary,
		CreatedAt: m.CreatedAt,
	}
}

// CreateSummaryRequest is the POST /summaries payload.
type CreateSummaryRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// CreateSummaryResponse acknowledges a created record before its
// summary exists.
type CreateSummaryResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// UpdateSummaryRequest is the PUT /summaries/:id payload.
type UpdateSummaryRequest struct {
	URL     string `json:"url" binding:"required,url"`
	Summary string `json:"summary" binding:"required"`
}
