package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/sheet-ticket-service/internal/config"
	"github.com/spec-kit/sheet-ticket-service/internal/domain"
	"github.com/spec-kit/sheet-ticket-service/internal/events"
	"github.com/spec-kit/sheet-ticket-service/internal/repository"
	"github.com/spec-kit/sheet-ticket-service/internal/service"
	"github.com/spec-kit/sheet-ticket-service/internal/sheetcodec"
)

var header = []string{"ID", "Description", "Parent ID", "Status", "Created At", "Updated At"}

type fakeTableStore struct {
	rows      [][]string
	appended  [][]string
	readCalls int
}

func (f *fakeTableStore) ReadAllRows(_ context.Context, _, _ string) ([][]string, error) {
	f.readCalls++
	return f.rows, nil
}

func (f *fakeTableStore) AppendRow(_ context.Context, _, _ string, row []string) error {
	f.appended = append(f.appended, row)
	f.rows = append(f.rows, row)
	return nil
}

type fixedIDGen struct{ id string }

func (g fixedIDGen) GenerateID() string { return g.id }

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type harness struct {
	store      *fakeTableStore
	dispatcher *recordingDispatcher
	svc        *service.TicketService
}

func newHarness(t *testing.T, rows [][]string, id string, now time.Time) *harness {
	t.Helper()
	store := &fakeTableStore{rows: rows}
	cfg := config.SheetsConfig{SpreadsheetID: "sheet-1", TabName: "Tickets"}
	repo := repository.NewSheetTicketRepository(store, sheetcodec.New(zap.NewNop()), cfg, zap.NewNop())
	dispatcher := &recordingDispatcher{}
	svc := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repo,
		IDGen:      fixedIDGen{id: id},
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
		Now:        func() time.Time { return now },
	})
	return &harness{store: store, dispatcher: dispatcher, svc: svc}
}

func Test_CreateTicket_AppliesDefaultsAndAppendsRow(t *testing.T) {
	h := newHarness(t, [][]string{header}, "X-1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	ticket, err := h.svc.CreateTicket(context.Background(), "New bug", nil)
	require.NoError(t, err)

	assert.Equal(t, "X-1", ticket.ID)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.False(t, ticket.CreatedAt.IsZero())
	assert.Nil(t, ticket.UpdatedAt)
	assert.Nil(t, ticket.ParentID)

	require.Len(t, h.store.appended, 1)
	assert.Equal(t, []string{"X-1", "New bug", "", "OPEN", "2024-06-01T00:00:00", ""}, h.store.appended[0])

	require.Len(t, h.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketCreated, h.dispatcher.published[0].Type)
}

func Test_CreateTicket_RejectsBlankDescription(t *testing.T) {
	h := newHarness(t, [][]string{header}, "X-1", time.Now())

	_, err := h.svc.CreateTicket(context.Background(), "   ", nil)
	require.Error(t, err)
	assert.Empty(t, h.store.appended)
}

func Test_UpdateTicket_StampsUpdatedAtAndReappendsFullState(t *testing.T) {
	h := newHarness(t, [][]string{
		header,
		{"AD-1", "Fix bug", "", "OPEN", "2024-01-01T10:00:00", ""},
	}, "unused", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	ticket, err := h.svc.UpdateTicket(context.Background(), "AD-1", "CLOSED")
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusClosed, ticket.Status)
	assert.Equal(t, "Fix bug", ticket.Description)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), ticket.CreatedAt)
	require.NotNil(t, ticket.UpdatedAt)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *ticket.UpdatedAt)

	// The stale OPEN row stays in the sheet; the update appends a second row.
	require.Len(t, h.store.appended, 1)
	assert.Equal(t, []string{"AD-1", "Fix bug", "", "CLOSED", "2024-01-01T10:00:00", "2024-06-01T00:00:00"}, h.store.appended[0])
	assert.Len(t, h.store.rows, 3)

	// Reads after the update see the new state.
	refetched, err := h.svc.GetTicketsByStatus(context.Background(), "CLOSED")
	require.NoError(t, err)
	require.Len(t, refetched, 1)
	assert.Equal(t, "AD-1", refetched[0].ID)

	require.Len(t, h.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketStatusChanged, h.dispatcher.published[0].Type)
	payload, ok := h.dispatcher.published[0].Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusOpen, payload.OldStatus)
	assert.Equal(t, domain.TicketStatusClosed, payload.NewStatus)
}

func Test_UpdateTicket_AllowsAnyStatusTransition(t *testing.T) {
	// The workflow deliberately does not enforce OPEN -> IN_PROGRESS -> CLOSED.
	h := newHarness(t, [][]string{
		header,
		{"AD-1", "Fix bug", "", "CLOSED", "2024-01-01T10:00:00", "2024-02-01T10:00:00"},
	}, "unused", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	ticket, err := h.svc.UpdateTicket(context.Background(), "AD-1", "OPEN")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
}

func Test_UpdateTicket_ReturnsNotFoundForUnknownID(t *testing.T) {
	h := newHarness(t, [][]string{header}, "unused", time.Now())

	_, err := h.svc.UpdateTicket(context.Background(), "missing", "CLOSED")
	require.ErrorIs(t, err, domain.ErrTicketNotFound)
	assert.Empty(t, h.store.appended)
}

func Test_UpdateTicket_RejectsInvalidStatusBeforeLookup(t *testing.T) {
	h := newHarness(t, [][]string{header}, "unused", time.Now())

	_, err := h.svc.UpdateTicket(context.Background(), "AD-1", "BOGUS")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Zero(t, h.store.readCalls)
}

func Test_GetTicketsByStatus_RejectsInvalidStatusWithoutStoreAccess(t *testing.T) {
	h := newHarness(t, [][]string{header}, "unused", time.Now())

	_, err := h.svc.GetTicketsByStatus(context.Background(), "BOGUS")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Zero(t, h.store.readCalls)
}

func Test_GetTicketsByStatus_AcceptsLowercaseInput(t *testing.T) {
	h := newHarness(t, [][]string{
		header,
		{"AD-1", "Fix bug", "", "OPEN", "2024-01-01T10:00:00", ""},
	}, "unused", time.Now())

	tickets, err := h.svc.GetTicketsByStatus(context.Background(), "open")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
}

func Test_CreateTicket_PropagatesRepositoryFailures(t *testing.T) {
	failing := &failingRepo{err: errors.New("store down")}
	svc := service.NewTicketService(service.TicketDependencies{
		TicketRepo: failing,
		IDGen:      fixedIDGen{id: "X-1"},
		Logger:     zap.NewNop(),
	})

	_, err := svc.CreateTicket(context.Background(), "New bug", nil)
	require.ErrorIs(t, err, failing.err)
}

type failingRepo struct{ err error }

func (f *failingRepo) SaveTicket(context.Context, *domain.Ticket) (*domain.Ticket, error) {
	return nil, f.err
}

func (f *failingRepo) FindByID(context.Context, string) (*domain.Ticket, error) {
	return nil, f.err
}

func (f *failingRepo) FindAllByStatus(context.Context, domain.TicketStatus) ([]domain.Ticket, error) {
	return nil, f.err
}
