// Package sheetcodec converts tickets to and from the positional row layout
// stored in the spreadsheet. All column-index knowledge lives here.
package sheetcodec

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sheet-ticket-service/internal/domain"
)

// Column order of a ticket row. Row 0 of the sheet is a header and is never
// decoded.
const (
	colID = iota
	colDescription
	colParentID
	colStatus
	colCreatedAt
	colUpdatedAt

	columnCount = 6
)

// encodeLayout is second-precision ISO-8601 without zone; the sheet stores
// local date-times as plain text.
const encodeLayout = "2006-01-02T15:04:05"

// decodeLayouts additionally accepts minute precision for rows written by
// older clients that drop zero seconds.
var decodeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Codec maps tickets onto 6-cell rows.
type Codec struct {
	logger *zap.Logger
}

// New constructs a Codec.
func New(logger *zap.Logger) *Codec {
	return &Codec{logger: logger}
}

// Encode renders a ticket as an ordered row. ParentID and UpdatedAt render as
// empty cells when absent.
func (c *Codec) Encode(ticket *domain.Ticket) []string {
	row := make([]string, columnCount)
	row[colID] = ticket.ID
	row[colDescription] = ticket.Description
	if ticket.ParentID != nil {
		row[colParentID] = *ticket.ParentID
	}
	row[colStatus] = string(ticket.Status)
	row[colCreatedAt] = ticket.CreatedAt.Format(encodeLayout)
	if ticket.UpdatedAt != nil {
		row[colUpdatedAt] = ticket.UpdatedAt.Format(encodeLayout)
	}
	return row
}

// Decode reconstructs a ticket from a row. Rows shorter than 6 cells are
// padded with empty cells. An unknown status cell fails the decode; an
// unparseable timestamp cell degrades to absent with a logged warning.
func (c *Codec) Decode(row []string) (*domain.Ticket, error) {
	status, err := domain.ParseTicketStatus(cell(row, colStatus))
	if err != nil {
		return nil, fmt.Errorf("row for id %q: %w", cell(row, colID), err)
	}

	ticket := &domain.Ticket{
		ID:          cell(row, colID),
		Description: cell(row, colDescription),
		Status:      status,
	}
	if parent := cell(row, colParentID); parent != "" {
		ticket.ParentID = &parent
	}
	if created := c.parseTime(ticket.ID, cell(row, colCreatedAt)); created != nil {
		ticket.CreatedAt = *created
	}
	ticket.UpdatedAt = c.parseTime(ticket.ID, cell(row, colUpdatedAt))

	return ticket, nil
}

func (c *Codec) parseTime(id, value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range decodeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	c.logger.Warn("unparseable timestamp cell, treating as absent",
		zap.String("ticket_id", id),
		zap.String("value", value),
	)
	return nil
}

func cell(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}
