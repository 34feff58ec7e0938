package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/sheet-ticket-service/internal/domain"
	"github.com/spec-kit/sheet-ticket-service/internal/events"
	"github.com/spec-kit/sheet-ticket-service/internal/repository"
	apperrors "github.com/spec-kit/sheet-ticket-service/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows on top of the repository.
type TicketService struct {
	tickets    repository.TicketRepository
	ids        IDGenerator
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service. IDGen and
// Now default to UUIDGenerator and time.Now when unset.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	IDGen      IDGenerator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	svc := &TicketService{
		tickets:    deps.TicketRepo,
		ids:        deps.IDGen,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if svc.ids == nil {
		svc.ids = UUIDGenerator{}
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// CreateTicket persists a new ticket: fresh id, status OPEN, createdAt
// stamped, updatedAt absent.
func (s *TicketService) CreateTicket(ctx context.Context, description string, parentID *string) (*domain.Ticket, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.NewValidationError("description is required", nil)
	}

	ticket := &domain.Ticket{
		ID:          s.ids.GenerateID(),
		Description: description,
		ParentID:    parentID,
		Status:      domain.TicketStatusOpen,
		CreatedAt:   s.now(),
	}
	s.logger.Info("creating ticket", zap.String("ticket_id", ticket.ID))

	saved, err := s.tickets.SaveTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: saved.ID,
		Payload: events.TicketCreatedPayload{
			Description: saved.Description,
			ParentID:    saved.ParentID,
			Status:      saved.Status,
		},
	})
	return saved, nil
}

// UpdateTicket moves an existing ticket to the given status and stamps
// updatedAt. The full state is re-appended; the store keeps the stale row.
//
// Any status may move to any other status: the workflow deliberately leaves
// ordering to the caller. Two concurrent updates for one id can interleave
// their read-modify-append sequences and both land; the later append wins on
// subsequent reads.
func (s *TicketService) UpdateTicket(ctx context.Context, id, status string) (*domain.Ticket, error) {
	newStatus, err := domain.ParseTicketStatus(status)
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}

	oldStatus := ticket.Status
	updatedAt := s.now()
	ticket.Status = newStatus
	ticket.UpdatedAt = &updatedAt
	s.logger.Info("updating ticket",
		zap.String("ticket_id", id),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(newStatus)),
	)

	saved, err := s.tickets.SaveTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: saved.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return saved, nil
}

// GetTicketsByStatus lists tickets currently in the given status. The status
// string is validated before any store access.
func (s *TicketService) GetTicketsByStatus(ctx context.Context, status string) ([]domain.Ticket, error) {
	parsed, err := domain.ParseTicketStatus(status)
	if err != nil {
		return nil, err
	}
	return s.tickets.FindAllByStatus(ctx, parsed)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
