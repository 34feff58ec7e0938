package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sheet-ticket-service/internal/domain"
)

func Test_ParseTicketStatus_AcceptsCanonicalAndLowercaseInput(t *testing.T) {
	cases := []struct {
		input string
		want  domain.TicketStatus
	}{
		{"OPEN", domain.TicketStatusOpen},
		{"open", domain.TicketStatusOpen},
		{" In_Progress ", domain.TicketStatusInProgress},
		{"CLOSED", domain.TicketStatusClosed},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := domain.ParseTicketStatus(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_ParseTicketStatus_RejectsUnknownValues(t *testing.T) {
	for _, input := range []string{"", "BOGUS", "DONE", "OPEN ED"} {
		t.Run(input, func(t *testing.T) {
			_, err := domain.ParseTicketStatus(input)
			require.ErrorIs(t, err, domain.ErrInvalidStatus)
		})
	}
}
