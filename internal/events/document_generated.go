package events

import "time"

const DocumentGeneratedTopic = "docs.document.generated.v1"

// DocumentGeneratedEvent is published through the outbox whenever an
// attestation or mission order is created. The consumer fans it out into
// a notification for the issuing user.
type DocumentGeneratedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	DocumentType string    `json:"document_type"` // ATT or OM
	DocumentID   string    `json:"document_id"`
	Reference    string    `json:"reference"`
	EmployeeID   string    `json:"employee_id"`
	IssuedByID   string    `json:"issued_by_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
