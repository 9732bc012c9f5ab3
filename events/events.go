package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies an event kind on the bus.
type EventType string

const (
	SummaryRequested EventType = "summary.requested"
)

// BaseEvent carries the envelope fields shared by every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// SummaryRequestedEvent triggers asynchronous summary generation for a
// freshly created record.
type SummaryRequestedEvent struct {
	BaseEvent
	SummaryID int64  `json:"summary_id"`
	URL       string `json:"url"`
}

// NewSummaryRequested builds the generation-trigger event for a record.
func NewSummaryRequested(summaryID int64, url string) SummaryRequestedEvent {
	return SummaryRequestedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      SummaryRequested,
			Timestamp: time.Now(),
			Source:    "api",
			Version:   "1.0",
		},
		SummaryID: summaryID,
		URL:       url,
	}
}
