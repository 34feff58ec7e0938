package dto

import (
	"time"

	"github.com/spec-kit/sheet-ticket-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
}

// UpdateTicketRequest payload. Status stays a string so the service owns
// validation.
type UpdateTicketRequest struct {
	Status string `json:"status"`
}

// TicketResponse is the transport representation of a ticket. Optional fields
// are omitted when absent.
type TicketResponse struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	ParentID    *string    `json:"parent_id,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// FromTicket maps a domain ticket to its response form.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		Description: ticket.Description,
		ParentID:    ticket.ParentID,
		Status:      string(ticket.Status),
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}
