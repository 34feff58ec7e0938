package events

import (
	"time"

	"github.com/spec-kit/sheet-ticket-service/internal/domain"
)

// EventType identifies the kind of ticket lifecycle event.
type EventType string

const (
	EventTicketCreated       EventType = "ticket.created"
	EventTicketStatusChanged EventType = "ticket.status_changed"
)

// Event is the envelope published on the dispatcher.
type Event struct {
	ID        string
	Type      EventType
	TicketID  string
	Timestamp time.Time
	Payload   any
}

// TicketCreatedPayload describes a freshly created ticket.
type TicketCreatedPayload struct {
	Description string
	ParentID    *string
	Status      domain.TicketStatus
}

// TicketStatusChangedPayload describes a status update.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus
	NewStatus domain.TicketStatus
}
