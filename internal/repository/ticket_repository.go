package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/sheet-ticket-service/internal/config"
	"github.com/spec-kit/sheet-ticket-service/internal/domain"
	"github.com/spec-kit/sheet-ticket-service/internal/sheetcodec"
	"github.com/spec-kit/sheet-ticket-service/internal/sheetstore"
)

// TicketRepository encapsulates ticket persistence.
//
// The backing store is append-only: SaveTicket appends the full current state
// as a fresh row, so the sheet may hold several rows for one id. Reads
// reconcile duplicates most-recent-append-wins.
type TicketRepository interface {
	// SaveTicket appends the ticket and returns it unchanged.
	SaveTicket(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	// FindByID returns the latest-appended ticket with the given id, or
	// (nil, nil) when no row matches.
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	// FindAllByStatus returns the latest state of every ticket currently in
	// the given status. An empty sheet yields an empty slice.
	FindAllByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error)
}

type sheetTicketRepository struct {
	store         sheetstore.TableStore
	codec         *sheetcodec.Codec
	spreadsheetID string
	tabName       string
	logger        *zap.Logger
}

// NewSheetTicketRepository instantiates the spreadsheet-backed repository.
func NewSheetTicketRepository(store sheetstore.TableStore, codec *sheetcodec.Codec, cfg config.SheetsConfig, logger *zap.Logger) TicketRepository {
	return &sheetTicketRepository{
		store:         store,
		codec:         codec,
		spreadsheetID: cfg.SpreadsheetID,
		tabName:       cfg.TabName,
		logger:        logger,
	}
}

func (r *sheetTicketRepository) SaveTicket(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	row := r.codec.Encode(ticket)
	if err := r.store.AppendRow(ctx, r.spreadsheetID, r.tabName, row); err != nil {
		return nil, transportFailure("save", err)
	}
	r.logger.Info("ticket saved",
		zap.String("ticket_id", ticket.ID),
		zap.String("status", string(ticket.Status)),
	)
	return ticket, nil
}

func (r *sheetTicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	tickets, err := r.scan(ctx, "find_by_id")
	if err != nil {
		return nil, err
	}
	// Later rows overwrite earlier ones in scan, so one linear pass suffices.
	for i := range tickets {
		if tickets[i].ID == id {
			return &tickets[i], nil
		}
	}
	return nil, nil
}

func (r *sheetTicketRepository) FindAllByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	tickets, err := r.scan(ctx, "find_all_by_status")
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if ticket.Status == status {
			matched = append(matched, ticket)
		}
	}
	return matched, nil
}

// scan reads the whole tab, skips the header row, and decodes the rest into
// the current state of each ticket: when an id appears more than once, the
// most recently appended row wins. Rows failing the hard decode contract are
// skipped with a warning so one corrupt row cannot poison the whole read.
func (r *sheetTicketRepository) scan(ctx context.Context, op string) ([]domain.Ticket, error) {
	rows, err := r.store.ReadAllRows(ctx, r.spreadsheetID, r.tabName)
	if err != nil {
		return nil, transportFailure(op, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	order := make([]string, 0, len(rows)-1)
	latest := make(map[string]domain.Ticket, len(rows)-1)
	for i, row := range rows[1:] {
		ticket, err := r.codec.Decode(row)
		if err != nil {
			r.logger.Warn("skipping undecodable row",
				zap.Int("row_index", i+1),
				zap.Error(err),
			)
			continue
		}
		if _, seen := latest[ticket.ID]; !seen {
			order = append(order, ticket.ID)
		}
		latest[ticket.ID] = *ticket
	}

	tickets := make([]domain.Ticket, 0, len(order))
	for _, id := range order {
		tickets = append(tickets, latest[id])
	}
	return tickets, nil
}
