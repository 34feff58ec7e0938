package cli

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/spec-kit/sheet-ticket-service/internal/domain"
)

const outputTimeLayout = "2006-01-02T15:04:05"

func cmdCreate(ctx context.Context, out, errOut io.Writer, args []string, api TicketAPI) int {
	flagSet := flag.NewFlagSet("create", flag.ContinueOnError)
	flagSet.SetOutput(errOut)
	description := flagSet.String("description", "", "Description of the ticket (required)")
	parentID := flagSet.String("parent-id", "", "ID of the parent ticket")

	if err := flagSet.Parse(args); err != nil {
		return 1
	}
	if *description == "" {
		fmt.Fprintln(errOut, "error: --description is required")
		return 1
	}

	var parent *string
	if *parentID != "" {
		parent = parentID
	}

	ticket, err := api.CreateTicket(ctx, *description, parent)
	if err != nil {
		fmt.Fprintf(errOut, "failed to create ticket: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Ticket created: %s\n", ticket.ID)
	return 0
}

func cmdUpdate(ctx context.Context, out, errOut io.Writer, args []string, api TicketAPI) int {
	flagSet := flag.NewFlagSet("update", flag.ContinueOnError)
	flagSet.SetOutput(errOut)
	id := flagSet.String("id", "", "ID of the ticket to update (required)")
	status := flagSet.String("status", "", "New status: OPEN, IN_PROGRESS or CLOSED (required)")

	if err := flagSet.Parse(args); err != nil {
		return 1
	}
	if *id == "" {
		fmt.Fprintln(errOut, "error: --id is required")
		return 1
	}
	if *status == "" {
		fmt.Fprintln(errOut, "error: --status is required")
		return 1
	}

	if _, err := api.UpdateTicket(ctx, *id, *status); err != nil {
		fmt.Fprintf(errOut, "failed to update ticket: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, "Ticket updated.")
	return 0
}

func cmdList(ctx context.Context, out, errOut io.Writer, args []string, api TicketAPI) int {
	flagSet := flag.NewFlagSet("list", flag.ContinueOnError)
	flagSet.SetOutput(errOut)
	status := flagSet.String("status", "", "Status to filter by: OPEN, IN_PROGRESS or CLOSED (required)")

	if err := flagSet.Parse(args); err != nil {
		return 1
	}
	if *status == "" {
		fmt.Fprintln(errOut, "error: --status is required")
		return 1
	}

	tickets, err := api.GetTicketsByStatus(ctx, *status)
	if err != nil {
		fmt.Fprintf(errOut, "failed to fetch tickets: %v\n", err)
		return 1
	}
	formatTickets(out, tickets)
	return 0
}

func formatTickets(out io.Writer, tickets []domain.Ticket) {
	for _, ticket := range tickets {
		fmt.Fprintln(out, "--------------------------------------------------")
		fmt.Fprintf(out, "ID         : %s\n", ticket.ID)
		fmt.Fprintf(out, "Description: %s\n", ticket.Description)
		fmt.Fprintf(out, "Status     : %s\n", ticket.Status)
		if ticket.ParentID != nil {
			fmt.Fprintf(out, "Parent ID  : %s\n", *ticket.ParentID)
		}
		fmt.Fprintf(out, "Created At : %s\n", ticket.CreatedAt.Format(outputTimeLayout))
		if ticket.UpdatedAt != nil {
			fmt.Fprintf(out, "Updated At : %s\n", ticket.UpdatedAt.Format(outputTimeLayout))
		}
	}
	fmt.Fprintln(out, "--------------------------------------------------")
}
