package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditSubscriber logs every ticket lifecycle event. Registered at
// wiring time by both entrypoints.
func RegisterAuditSubscriber(dispatcher Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event Event) error {
		logger.Info("ticket event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Time("timestamp", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
	dispatcher.Subscribe(EventTicketCreated, handler)
	dispatcher.Subscribe(EventTicketStatusChanged, handler)
}
