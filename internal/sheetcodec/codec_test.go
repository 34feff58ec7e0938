package sheetcodec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/sheet-ticket-service/internal/domain"
	"github.com/spec-kit/sheet-ticket-service/internal/sheetcodec"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func Test_Codec_RoundTripsValidTickets(t *testing.T) {
	codec := sheetcodec.New(zap.NewNop())

	cases := []struct {
		name   string
		ticket domain.Ticket
	}{
		{
			name: "all fields set",
			ticket: domain.Ticket{
				ID:          "AD-7",
				Description: "Broken login",
				ParentID:    strPtr("AD-1"),
				Status:      domain.TicketStatusInProgress,
				CreatedAt:   time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC),
				UpdatedAt:   timePtr(time.Date(2024, 3, 16, 11, 0, 0, 0, time.UTC)),
			},
		},
		{
			name: "optional fields absent",
			ticket: domain.Ticket{
				ID:          "AD-8",
				Description: "New feature",
				Status:      domain.TicketStatusOpen,
				CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := codec.Encode(&tc.ticket)
			require.Len(t, row, 6)

			decoded, err := codec.Decode(row)
			require.NoError(t, err)
			assert.Equal(t, &tc.ticket, decoded)
		})
	}
}

func Test_Codec_Encode_RendersAbsentFieldsAsEmptyCells(t *testing.T) {
	codec := sheetcodec.New(zap.NewNop())

	ticket := &domain.Ticket{
		ID:          "X-1",
		Description: "New bug",
		Status:      domain.TicketStatusOpen,
		CreatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	row := codec.Encode(ticket)
	assert.Equal(t, []string{"X-1", "New bug", "", "OPEN", "2024-06-01T00:00:00", ""}, row)
}

func Test_Codec_Decode_MapsSpreadsheetRowToTicket(t *testing.T) {
	codec := sheetcodec.New(zap.NewNop())

	ticket, err := codec.Decode([]string{"AD-1", "Fix bug", "", "OPEN", "2024-01-01T10:00:00", ""})
	require.NoError(t, err)

	assert.Equal(t, "AD-1", ticket.ID)
	assert.Equal(t, "Fix bug", ticket.Description)
	assert.Nil(t, ticket.ParentID)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), ticket.CreatedAt)
	assert.Nil(t, ticket.UpdatedAt)
}

func Test_Codec_Decode_PadsShortRows(t *testing.T) {
	codec := sheetcodec.New(zap.NewNop())

	ticket, err := codec.Decode([]string{"AD-2", "Trailing cells missing", "", "CLOSED"})
	require.NoError(t, err)

	assert.Equal(t, "AD-2", ticket.ID)
	assert.Equal(t, domain.TicketStatusClosed, ticket.Status)
	assert.True(t, ticket.CreatedAt.IsZero())
	assert.Nil(t, ticket.UpdatedAt)
}

func Test_Codec_Decode_FailsHardOnInvalidStatus(t *testing.T) {
	codec := sheetcodec.New(zap.NewNop())

	_, err := codec.Decode([]string{"AD-3", "Bad status cell", "", "WONTFIX", "2024-01-01T10:00:00", ""})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func Test_Codec_Decode_DegradesUnparseableTimestampsToAbsent(t *testing.T) {
	codec := sheetcodec.New(zap.NewNop())

	ticket, err := codec.Decode([]string{"AD-4", "Bad dates", "", "OPEN", "not-a-date", "also-not-a-date"})
	require.NoError(t, err)

	assert.True(t, ticket.CreatedAt.IsZero())
	assert.Nil(t, ticket.UpdatedAt)
}

func Test_Codec_Decode_AcceptsMinutePrecisionTimestamps(t *testing.T) {
	// Rows written by older clients drop zero seconds.
	codec := sheetcodec.New(zap.NewNop())

	ticket, err := codec.Decode([]string{"AD-5", "Minute precision", "", "OPEN", "2024-01-01T10:00", ""})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), ticket.CreatedAt)
}
