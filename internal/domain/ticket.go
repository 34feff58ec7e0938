package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// AllTicketStatuses lists every valid status in declaration order.
var AllTicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusClosed,
}

// ErrInvalidStatus marks a status string outside the closed enumeration.
var ErrInvalidStatus = errors.New("invalid ticket status")

// ErrTicketNotFound marks an operation targeting an unknown ticket id.
var ErrTicketNotFound = errors.New("ticket not found")

// ParseTicketStatus converts caller input into a TicketStatus. Input is
// case-insensitive; anything outside the enumeration is rejected.
func ParseTicketStatus(value string) (TicketStatus, error) {
	candidate := TicketStatus(strings.ToUpper(strings.TrimSpace(value)))
	for _, status := range AllTicketStatuses {
		if candidate == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// Ticket is the aggregate for tracked work items.
type Ticket struct {
	ID          string
	Description string
	ParentID    *string
	Status      TicketStatus
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
