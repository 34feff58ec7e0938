// Package cli implements the ticketctl command set. Commands run in-process
// against the ticket service, not through the HTTP API.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spec-kit/sheet-ticket-service/internal/domain"
)

// TicketAPI is the service surface the commands call. Implemented by
// *service.TicketService.
type TicketAPI interface {
	CreateTicket(ctx context.Context, description string, parentID *string) (*domain.Ticket, error)
	UpdateTicket(ctx context.Context, id, status string) (*domain.Ticket, error)
	GetTicketsByStatus(ctx context.Context, status string) ([]domain.Ticket, error)
}

const usage = `Usage:
  ticketctl create --description "..." [--parent-id ID]
  ticketctl update --id ID --status STATUS
  ticketctl list --status STATUS

Statuses: OPEN, IN_PROGRESS, CLOSED
`

// Run dispatches args[0] as a subcommand and returns the process exit code.
func Run(ctx context.Context, out, errOut io.Writer, args []string, api TicketAPI) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		fmt.Fprint(out, usage)
		return 0
	}

	switch args[0] {
	case "create":
		return cmdCreate(ctx, out, errOut, args[1:], api)
	case "update":
		return cmdUpdate(ctx, out, errOut, args[1:], api)
	case "list":
		return cmdList(ctx, out, errOut, args[1:], api)
	default:
		fmt.Fprintf(errOut, "unknown command %q\n\n", args[0])
		fmt.Fprint(errOut, usage)
		return 1
	}
}
